package lregistry

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/ipfinder/lib/gen"
	"github.com/ValentinKolb/ipfinder/lib/registry"
	regtesting "github.com/ValentinKolb/ipfinder/lib/registry/testing"
)

func Test(t *testing.T) {
	regtesting.RunRegistryTests(t, "LocalRegistry", func() registry.IRegistry {
		return NewLocalRegistry(EmptyMap, nil)
	})
}

func Benchmark(b *testing.B) {
	regtesting.RunRegistryBenchmarks(b, "LocalRegistry", func() registry.IRegistry {
		return NewLocalRegistry(EmptyMap, nil)
	})
}

func TestSeededMap(t *testing.T) {
	g := gen.NewGenerator(&gen.Options{Count: 8, BaseIP: "10.9.9.", PacketPrefix: "PKT-", Seed: 3})
	reg := NewLocalRegistry(SeededMap(g), nil)

	stats, _ := reg.Stats()
	if stats.Size < 1 || stats.Size > 8 {
		t.Fatalf("Expected 1..8 seeded devices, got %d", stats.Size)
	}

	devices, _ := reg.List()
	for _, d := range devices {
		if !strings.HasPrefix(d.IP, "10.9.9.") {
			t.Errorf("Unexpected seeded IP %s", d.IP)
		}
		if d.Name != UnknownDevice {
			t.Errorf("Expected seeded device without name, got %s", d.Name)
		}
	}

	// clear never re-seeds
	if err := reg.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if stats, _ = reg.Stats(); stats.Size != 0 {
		t.Errorf("Expected empty registry after clear, got %d", stats.Size)
	}
}

func TestUpdateMovesName(t *testing.T) {
	reg := NewLocalRegistry(nil, nil)
	packet := "PKT-1"
	reg.Add("10.0.0.1", "router", &packet)
	reg.Add("10.0.0.2", "", nil)

	newIP := "10.0.0.3"
	if _, ok, _ := reg.Update("10.0.0.1", &newIP, nil); !ok {
		t.Fatalf("Expected update to succeed")
	}
	device, found, _ := reg.Search("10.0.0.3")
	if !found || device.Name != "router" {
		t.Errorf("Expected name router at new IP, got %+v", device)
	}

	// renaming onto an IP that had a name: the moved device keeps its own name
	target := "10.0.0.2"
	reg.Update("10.0.0.3", &target, nil)
	device, _, _ = reg.Search("10.0.0.2")
	if device.Name != "router" {
		t.Errorf("Expected name router after overwrite, got %s", device.Name)
	}
}

func TestGenerateNegative(t *testing.T) {
	reg := NewLocalRegistry(nil, nil)
	_, err := reg.Generate(-1)
	regErr, ok := err.(*registry.Error)
	if !ok || regErr.Code != registry.RetCInvalidOperation {
		t.Errorf("Expected invalid operation error, got %v", err)
	}
}
