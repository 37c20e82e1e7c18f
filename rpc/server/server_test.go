package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/ipfinder/lib/registry"
	regtesting "github.com/ValentinKolb/ipfinder/lib/registry/testing"
	"github.com/ValentinKolb/ipfinder/rpc/client"
	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/serializer"
	"github.com/ValentinKolb/ipfinder/rpc/transport"
)

// --------------------------------------------------------------------------
// In-process transports
// --------------------------------------------------------------------------

// localServerTransport only keeps the registered handler
type localServerTransport struct {
	handler transport.ServerHandleFunc
}

func (t *localServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *localServerTransport) Listen(common.ServerConfig) error {
	return nil
}

// localClientTransport calls the server handler directly
type localClientTransport struct {
	server *localServerTransport
}

func (t *localClientTransport) Connect(common.ClientConfig) error {
	if t.server.handler == nil {
		return fmt.Errorf("server not set up")
	}
	return nil
}

func (t *localClientTransport) Send(networkId uint64, req []byte) ([]byte, error) {
	return t.server.handler(networkId, req), nil
}

func (t *localClientTransport) Close() error {
	return nil
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

var testSerializers = map[string]func() serializer.IRPCSerializer{
	"JSON":   serializer.NewJSONSerializer,
	"GOB":    serializer.NewGOBSerializer,
	"Binary": serializer.NewBinarySerializer,
}

// nextNetworkId keeps metric names of different test servers apart
var nextNetworkId atomic.Uint64

func newTestServer(t testing.TB, ser serializer.IRPCSerializer, networks ...common.ServerNetwork) *localServerTransport {
	t.Helper()
	st := &localServerTransport{}
	s := NewRPCServer(common.ServerConfig{Networks: networks, SeedCount: 5}, st, ser)
	if err := s.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	return st
}

func newTestClient(t testing.TB, st *localServerTransport, ser serializer.IRPCSerializer, networkId uint64) registry.IRegistry {
	t.Helper()
	reg, err := client.NewRPCRegistry(networkId, common.ClientConfig{}, &localClientTransport{server: st}, ser)
	if err != nil {
		t.Fatalf("NewRPCRegistry failed: %v", err)
	}
	return reg
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func TestRPCRegistry(t *testing.T) {
	for name, newSerializer := range testSerializers {
		ser := newSerializer()
		regtesting.RunRegistryTests(t, "RPCRegistry/"+name, func() registry.IRegistry {
			networkId := nextNetworkId.Add(1)
			st := newTestServer(t, ser, common.ServerNetwork{NetworkID: networkId, Type: common.NetworkTypeEmpty})
			return newTestClient(t, st, ser, networkId)
		})
	}
}

func BenchmarkRPCRegistry(b *testing.B) {
	ser := serializer.NewBinarySerializer()
	regtesting.RunRegistryBenchmarks(b, "RPCRegistry/Binary", func() registry.IRegistry {
		networkId := nextNetworkId.Add(1)
		st := newTestServer(b, ser, common.ServerNetwork{NetworkID: networkId, Type: common.NetworkTypeEmpty})
		return newTestClient(b, st, ser, networkId)
	})
}

func TestNetworksAreIsolated(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	a, b := nextNetworkId.Add(1), nextNetworkId.Add(1)
	st := newTestServer(t, ser,
		common.ServerNetwork{NetworkID: a, Type: common.NetworkTypeEmpty},
		common.ServerNetwork{NetworkID: b, Type: common.NetworkTypeEmpty},
	)

	regA := newTestClient(t, st, ser, a)
	regB := newTestClient(t, st, ser, b)

	packet := "PKT-1"
	if _, err := regA.Add("10.0.0.1", "", &packet); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, found, _ := regB.Search("10.0.0.1"); found {
		t.Errorf("Expected device to exist only in network %d", a)
	}
	if _, found, _ := regA.Search("10.0.0.1"); !found {
		t.Errorf("Expected device in network %d", a)
	}
}

func TestRandomNetwork(t *testing.T) {
	ser := serializer.NewJSONSerializer()
	id := nextNetworkId.Add(1)
	st := newTestServer(t, ser, common.ServerNetwork{NetworkID: id, Type: common.NetworkTypeRandom})
	reg := newTestClient(t, st, ser, id)

	devices, err := reg.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) < 1 || len(devices) > 5 {
		t.Fatalf("Expected 1..5 seeded devices, got %d", len(devices))
	}
	for _, d := range devices {
		if !strings.HasPrefix(d.IP, "192.168.1.") || d.Packet == nil {
			t.Errorf("Unexpected seeded device %+v", d)
		}
	}
}

func TestPetNames(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	id := nextNetworkId.Add(1)
	st := &localServerTransport{}
	s := NewRPCServer(common.ServerConfig{
		Networks: []common.ServerNetwork{{NetworkID: id, Type: common.NetworkTypeEmpty}},
		PetNames: true,
	}, st, ser)
	if err := s.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	reg := newTestClient(t, st, ser, id)

	generated, err := reg.Generate(5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	devices, err := reg.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != generated {
		t.Fatalf("Expected %d devices, got %d", generated, len(devices))
	}
	for _, d := range devices {
		if strings.HasPrefix(d.Name, "Device-") || !strings.Contains(d.Name, "-") {
			t.Errorf("Expected pet name for %s, got %s", d.IP, d.Name)
		}
	}

	// devices added without a name still get the numbered default
	packet := "PKT-1"
	if _, err = reg.Add("10.0.0.9", "", &packet); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if device, _, _ := reg.Search("10.0.0.9"); device.Name != "Device-9" {
		t.Errorf("Expected default name Device-9, got %s", device.Name)
	}
}

func TestUnknownNetwork(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	id := nextNetworkId.Add(1)
	st := newTestServer(t, ser, common.ServerNetwork{NetworkID: id, Type: common.NetworkTypeEmpty})

	reg := newTestClient(t, st, ser, id+1000)
	_, err := reg.Stats()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected network not found error, got %v", err)
	}
}

func TestInvalidRequest(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	id := nextNetworkId.Add(1)
	st := newTestServer(t, ser, common.ServerNetwork{NetworkID: id, Type: common.NetworkTypeEmpty})

	var resp common.Message
	if err := ser.Deserialize(st.handler(id, []byte{1}), &resp); err != nil {
		t.Fatalf("Failed to deserialize response: %v", err)
	}
	if resp.MsgType != common.MsgTError || !strings.Contains(resp.Err, "deserialize") {
		t.Errorf("Expected deserialize error, got %+v", resp)
	}

	// message types the adapter does not know
	req, _ := ser.Serialize(common.Message{MsgType: common.MsgTSuccess})
	if err := ser.Deserialize(st.handler(id, req), &resp); err != nil {
		t.Fatalf("Failed to deserialize response: %v", err)
	}
	if resp.MsgType != common.MsgTError {
		t.Errorf("Expected error for unsupported message type, got %+v", resp)
	}
}

func TestSetupErrors(t *testing.T) {
	ser := serializer.NewBinarySerializer()

	s := NewRPCServer(common.ServerConfig{Networks: []common.ServerNetwork{
		{NetworkID: 1, Type: "bogus"},
	}}, &localServerTransport{}, ser)
	if err := s.setup(); err == nil {
		t.Errorf("Expected error for invalid network type")
	}

	id := nextNetworkId.Add(1)
	s = NewRPCServer(common.ServerConfig{Networks: []common.ServerNetwork{
		{NetworkID: id, Type: common.NetworkTypeEmpty},
		{NetworkID: id, Type: common.NetworkTypeRandom},
	}}, &localServerTransport{}, ser)
	if err := s.setup(); err == nil {
		t.Errorf("Expected error for duplicate network id")
	}
}
