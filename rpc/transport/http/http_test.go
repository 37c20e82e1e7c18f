package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/VictoriaMetrics/metrics"
)

// newTestServer starts a server transport whose handler echoes the network id
// and the request body
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := &httpServerTransport{config: common.ServerConfig{LogLevel: "debug"}}
	st.RegisterHandler(func(networkId uint64, req []byte) []byte {
		return []byte(fmt.Sprintf("%d:%s", networkId, req))
	})
	server := httptest.NewServer(st.newMux())
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, endpoints ...string) *httpClientTransport {
	t.Helper()
	ct := &httpClientTransport{}
	if err := ct.Connect(common.ClientConfig{Endpoints: endpoints, TimeoutSecond: 5, RetryCount: 2}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { ct.Close() })
	return ct
}

func TestRoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server.URL)

	for _, networkId := range []uint64{0, 1, 42} {
		resp, err := client.Send(networkId, []byte("ping"))
		if err != nil {
			t.Fatalf("Send failed: %v", err)
		}
		if want := fmt.Sprintf("%d:ping", networkId); string(resp) != want {
			t.Errorf("Expected %q, got %q", want, resp)
		}
	}
}

func TestEndpointWithoutScheme(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, strings.TrimPrefix(server.URL, "http://"))

	resp, err := client.Send(7, []byte("x"))
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if string(resp) != "7:x" {
		t.Errorf("Unexpected response %q", resp)
	}
}

func TestRetryNextEndpoint(t *testing.T) {
	server := newTestServer(t)

	// the first attempt goes to the second endpoint, which is dead
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	client := newTestClient(t, server.URL, deadURL)
	for i := 0; i < 4; i++ {
		if _, err := client.Send(1, []byte("retry")); err != nil {
			t.Fatalf("Expected retry to reach the live endpoint, got %v", err)
		}
	}
}

func TestInvalidNetworkId(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/not-a-number", "application/octet-stream", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	// the client reports non 200 responses as errors
	client := newTestClient(t, server.URL+"/not-a-number")
	if _, err = client.Send(1, []byte("x")); err == nil {
		t.Errorf("Expected error for unknown route")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)
	metrics.GetOrCreateCounter(`ipfinder_transport_test_total`).Inc()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ipfinder_transport_test_total 1") {
		t.Errorf("Expected counter in metrics output, got:\n%s", body)
	}
}

func TestSendWithoutConnect(t *testing.T) {
	client := &httpClientTransport{}
	if _, err := client.Send(1, nil); err == nil {
		t.Errorf("Expected error for unconnected transport")
	}
	if err := client.Connect(common.ClientConfig{}); err == nil {
		t.Errorf("Expected error without endpoints")
	}
}
