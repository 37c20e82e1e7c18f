package gen

import (
	"strconv"
	"strings"
	"testing"
)

func TestIP(t *testing.T) {
	g := NewGenerator(&Options{BaseIP: "10.1.2.", Seed: 7})
	for i := 0; i < 500; i++ {
		ip := g.IP()
		if !strings.HasPrefix(ip, "10.1.2.") {
			t.Fatalf("Expected prefix 10.1.2., got %s", ip)
		}
		octet, err := strconv.Atoi(strings.TrimPrefix(ip, "10.1.2."))
		if err != nil || octet < 1 || octet > 254 {
			t.Fatalf("Expected last octet in 1..254, got %s", ip)
		}
	}
}

func TestPacket(t *testing.T) {
	g := NewGenerator(&Options{PacketPrefix: "PKT-", Seed: 7})
	for i := 0; i < 500; i++ {
		p := g.Packet()
		n, err := strconv.Atoi(strings.TrimPrefix(p, "PKT-"))
		if err != nil || n < 1000 || n > 9999 {
			t.Fatalf("Expected PKT-1000..PKT-9999, got %s", p)
		}
	}
}

func TestReproducible(t *testing.T) {
	a := NewGenerator(&Options{BaseIP: "192.168.1.", Seed: 99})
	b := NewGenerator(&Options{BaseIP: "192.168.1.", Seed: 99})
	for i := 0; i < 20; i++ {
		if x, y := a.IP(), b.IP(); x != y {
			t.Fatalf("Expected equal sequences for equal seeds, got %s and %s", x, y)
		}
	}
}

func TestNames(t *testing.T) {
	g := NewGenerator(nil)
	if got := g.DeviceName(3); got != "Device-3" {
		t.Errorf("Expected Device-3, got %s", got)
	}
	if got := g.DefaultName("192.168.1.42"); got != "Device-42" {
		t.Errorf("Expected Device-42, got %s", got)
	}
	if got := DefaultName("Device-", "localhost"); got != "Device-localhost" {
		t.Errorf("Expected Device-localhost, got %s", got)
	}

	pets := NewGenerator(&Options{PetNames: true})
	if name := pets.DeviceName(1); name == "" || !strings.Contains(name, "-") {
		t.Errorf("Expected a two word pet name, got %q", name)
	}
}

func TestSeed(t *testing.T) {
	g := NewGenerator(&Options{Count: 5, BaseIP: "192.168.1.", PacketPrefix: "PKT-", Seed: 1})
	entries := g.Seed()
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Value == nil || !strings.HasPrefix(*e.Value, "PKT-") {
			t.Errorf("Expected packet for %s", e.Key)
		}
	}

	if n := len(NewGenerator(&Options{}).Seed()); n != DefaultCount {
		t.Errorf("Expected %d entries by default, got %d", DefaultCount, n)
	}
}
