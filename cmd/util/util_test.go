package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/ipfinder/rpc/common"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("Line longer than %d characters: %q", Wrap, line)
		}
	}

	if got := WrapString("  short   text "); got != "short text" {
		t.Errorf("Expected whitespace to be normalized, got %q", got)
	}
}

func TestValidateIP(t *testing.T) {
	tests := []struct {
		ip    string
		valid bool
	}{
		{"192.168.1.1", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"10.0.0.256", false},
		{"10.0.0", false},
		{"10.0.0.1.1", false},
		{"a.b.c.d", false},
		{"10..0.1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			err := ValidateIP(tt.ip)
			if tt.valid && err != nil {
				t.Errorf("Expected %q to be valid, got %v", tt.ip, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("Expected %q to be invalid", tt.ip)
			}
		})
	}
}

func TestParseNetworks(t *testing.T) {
	networks, err := ParseNetworks("1=empty, 2 = random")
	if err != nil {
		t.Fatalf("ParseNetworks failed: %v", err)
	}

	expected := []common.ServerNetwork{
		{NetworkID: 1, Type: common.NetworkTypeEmpty},
		{NetworkID: 2, Type: common.NetworkTypeRandom},
	}
	if len(networks) != len(expected) {
		t.Fatalf("Expected %d networks, got %d", len(expected), len(networks))
	}
	for i := range expected {
		if networks[i] != expected[i] {
			t.Errorf("Network %d: expected %+v, got %+v", i, expected[i], networks[i])
		}
	}

	for _, invalid := range []string{"1", "x=empty", "1=full", "1=empty,1=random", ""} {
		if _, err := ParseNetworks(invalid); err == nil {
			t.Errorf("Expected error for %q", invalid)
		}
	}
}
