package testing

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/lib/splay"
)

// RegistryFactory is a function that creates a new, empty instance of an
// IRegistry implementation
type RegistryFactory func() registry.IRegistry

// RunRegistryTests runs a comprehensive test suite for an IRegistry implementation.
func RunRegistryTests(t *testing.T, name string, factory RegistryFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Add&Search", func(t *testing.T) {
			testAddSearch(t, factory())
		})

		t.Run("DefaultName", func(t *testing.T) {
			testDefaultName(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, factory())
		})

		t.Run("List", func(t *testing.T) {
			testList(t, factory())
		})

		t.Run("Structure", func(t *testing.T) {
			testStructure(t, factory())
		})

		t.Run("Stats", func(t *testing.T) {
			testStats(t, factory())
		})

		t.Run("Generate", func(t *testing.T) {
			testGenerate(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("ConcurrentUsage", func(t *testing.T) {
			testConcurrentUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func ptr(s string) *string {
	return &s
}

func mustAdd(t testing.TB, reg registry.IRegistry, ip, name string, packet *string) bool {
	t.Helper()
	inserted, err := reg.Add(ip, name, packet)
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", ip, err)
	}
	return inserted
}

func mustStats(t testing.TB, reg registry.IRegistry) registry.Stats {
	t.Helper()
	stats, err := reg.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	return stats
}

func packetOf(d registry.Device) string {
	if d.Packet == nil {
		return "<nil>"
	}
	return *d.Packet
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testAddSearch(t *testing.T, reg registry.IRegistry) {
	if !mustAdd(t, reg, "192.168.1.10", "printer", ptr("PKT-1000")) {
		t.Errorf("Expected first add to insert")
	}

	device, found, err := reg.Search("192.168.1.10")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !found {
		t.Fatalf("Expected device to be found")
	}
	if device.IP != "192.168.1.10" || device.Name != "printer" || packetOf(device) != "PKT-1000" {
		t.Errorf("Unexpected device %+v (packet %s)", device, packetOf(device))
	}

	// re-adding overwrites the packet and reports no insert
	if mustAdd(t, reg, "192.168.1.10", "printer", ptr("PKT-2000")) {
		t.Errorf("Expected second add to report an existing device")
	}
	device, _, _ = reg.Search("192.168.1.10")
	if packetOf(device) != "PKT-2000" {
		t.Errorf("Expected packet PKT-2000, got %s", packetOf(device))
	}

	// without packet
	mustAdd(t, reg, "192.168.1.11", "laptop", nil)
	device, found, _ = reg.Search("192.168.1.11")
	if !found || device.Packet != nil {
		t.Errorf("Expected device without packet, got %+v", device)
	}

	if _, found, _ = reg.Search("10.0.0.1"); found {
		t.Errorf("Expected unknown IP not to be found")
	}

	if stats := mustStats(t, reg); stats.Size != 2 {
		t.Errorf("Expected 2 devices, got %d", stats.Size)
	}
}

func testDefaultName(t *testing.T, reg registry.IRegistry) {
	mustAdd(t, reg, "192.168.1.42", "", ptr("PKT-4242"))

	device, found, _ := reg.Search("192.168.1.42")
	if !found {
		t.Fatalf("Expected device to be found")
	}
	if device.Name != "Device-42" {
		t.Errorf("Expected default name Device-42, got %s", device.Name)
	}

	// the name is recorded again for existing devices
	mustAdd(t, reg, "192.168.1.42", "camera", nil)
	device, _, _ = reg.Search("192.168.1.42")
	if device.Name != "camera" {
		t.Errorf("Expected name camera, got %s", device.Name)
	}
}

func testDelete(t *testing.T, reg registry.IRegistry) {
	mustAdd(t, reg, "10.0.0.1", "a", ptr("PKT-1"))
	mustAdd(t, reg, "10.0.0.2", "b", ptr("PKT-2"))
	mustAdd(t, reg, "10.0.0.3", "c", ptr("PKT-3"))

	removed, err := reg.Delete("10.0.0.2")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Errorf("Expected device to be removed")
	}
	if _, found, _ := reg.Search("10.0.0.2"); found {
		t.Errorf("Expected deleted device to be gone")
	}

	// second delete is a no-op
	if removed, _ = reg.Delete("10.0.0.2"); removed {
		t.Errorf("Expected second delete to report false")
	}

	// re-adding a deleted IP starts without the old name
	mustAdd(t, reg, "10.0.0.2", "", nil)
	device, _, _ := reg.Search("10.0.0.2")
	if device.Name != "Device-2" {
		t.Errorf("Expected default name after re-add, got %s", device.Name)
	}

	if stats := mustStats(t, reg); stats.Size != 3 {
		t.Errorf("Expected 3 devices, got %d", stats.Size)
	}
}

func testUpdate(t *testing.T, reg registry.IRegistry) {
	mustAdd(t, reg, "10.0.0.1", "router", ptr("PKT-1"))

	t.Run("Packet", func(t *testing.T) {
		res, ok, err := reg.Update("10.0.0.1", nil, ptr("PKT-9"))
		if err != nil || !ok {
			t.Fatalf("Expected update to succeed, got ok=%v err=%v", ok, err)
		}
		if res.OldIP != nil {
			t.Errorf("Expected no old IP for packet update, got %s", *res.OldIP)
		}
		if res.OldPacket == nil || *res.OldPacket != "PKT-1" {
			t.Errorf("Expected old packet PKT-1, got %v", res.OldPacket)
		}
		device, _, _ := reg.Search("10.0.0.1")
		if packetOf(device) != "PKT-9" {
			t.Errorf("Expected packet PKT-9, got %s", packetOf(device))
		}
	})

	t.Run("IP", func(t *testing.T) {
		res, ok, err := reg.Update("10.0.0.1", ptr("10.0.0.5"), nil)
		if err != nil || !ok {
			t.Fatalf("Expected update to succeed, got ok=%v err=%v", ok, err)
		}
		if res.OldIP == nil || *res.OldIP != "10.0.0.1" {
			t.Errorf("Expected old IP 10.0.0.1, got %v", res.OldIP)
		}
		if _, found, _ := reg.Search("10.0.0.1"); found {
			t.Errorf("Expected old IP to be gone")
		}
		device, found, _ := reg.Search("10.0.0.5")
		if !found {
			t.Fatalf("Expected new IP to be found")
		}
		if device.Name != "router" || packetOf(device) != "PKT-9" {
			t.Errorf("Expected name and packet to follow, got %+v (packet %s)", device, packetOf(device))
		}
	})

	t.Run("IP&Packet", func(t *testing.T) {
		_, ok, _ := reg.Update("10.0.0.5", ptr("10.0.0.6"), ptr("PKT-6"))
		if !ok {
			t.Fatalf("Expected update to succeed")
		}
		device, found, _ := reg.Search("10.0.0.6")
		if !found || packetOf(device) != "PKT-6" {
			t.Errorf("Expected PKT-6 at new IP, got %+v", device)
		}
	})

	t.Run("EmptyPacket", func(t *testing.T) {
		// an empty packet is a value, not "keep the current one"
		res, ok, err := reg.Update("10.0.0.6", nil, ptr(""))
		if err != nil || !ok {
			t.Fatalf("Expected update to succeed, got ok=%v err=%v", ok, err)
		}
		if res.OldPacket == nil || *res.OldPacket != "PKT-6" {
			t.Errorf("Expected old packet PKT-6, got %v", res.OldPacket)
		}
		device, found, _ := reg.Search("10.0.0.6")
		if !found || device.Packet == nil || *device.Packet != "" {
			t.Errorf("Expected empty packet, got %+v (packet %s)", device, packetOf(device))
		}

		mustAdd(t, reg, "10.0.0.7", "switch", ptr(""))
		device, found, _ = reg.Search("10.0.0.7")
		if !found || device.Packet == nil || *device.Packet != "" {
			t.Errorf("Expected added empty packet, got %+v (packet %s)", device, packetOf(device))
		}
		if removed, _ := reg.Delete("10.0.0.7"); !removed {
			t.Errorf("Expected 10.0.0.7 to be removed")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, ok, err := reg.Update("172.16.0.1", ptr("172.16.0.2"), nil)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if ok {
			t.Errorf("Expected update of unknown IP to fail")
		}
		if _, found, _ := reg.Search("172.16.0.2"); found {
			t.Errorf("Expected no device to be created")
		}
	})

	if stats := mustStats(t, reg); stats.Size != 1 {
		t.Errorf("Expected 1 device, got %d", stats.Size)
	}
}

func testList(t *testing.T, reg registry.IRegistry) {
	devices, err := reg.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected empty list, got %d devices", len(devices))
	}

	ips := []string{"192.168.1.9", "192.168.1.100", "10.0.0.1", "192.168.1.20"}
	for i, ip := range ips {
		mustAdd(t, reg, ip, fmt.Sprintf("dev-%d", i), ptr(fmt.Sprintf("PKT-%d", i)))
	}

	devices, err = reg.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := append([]string(nil), ips...)
	sort.Strings(expected)
	if len(devices) != len(expected) {
		t.Fatalf("Expected %d devices, got %d", len(expected), len(devices))
	}
	for i, d := range devices {
		if d.IP != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], d.IP)
		}
		if !strings.HasPrefix(d.Name, "dev-") {
			t.Errorf("Expected name for %s, got %s", d.IP, d.Name)
		}
	}

	// listing is not a search
	if stats := mustStats(t, reg); stats.SearchCount != 0 {
		t.Errorf("Expected search count 0 after List, got %d", stats.SearchCount)
	}
}

func testStructure(t *testing.T, reg registry.IRegistry) {
	text, err := reg.Structure()
	if err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	if text != splay.EmptyTree {
		t.Errorf("Expected empty tree text, got %q", text)
	}

	mustAdd(t, reg, "10.0.0.1", "", ptr("A"))
	mustAdd(t, reg, "10.0.0.2", "", nil)

	text, _ = reg.Structure()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), text)
	}
	// the last insert is the root
	if lines[0] != "10.0.0.2 (Packet: -)" {
		t.Errorf("Unexpected root line %q", lines[0])
	}
	if !strings.Contains(lines[1], "10.0.0.1 (Packet: A)") {
		t.Errorf("Unexpected child line %q", lines[1])
	}
}

func testStats(t *testing.T, reg registry.IRegistry) {
	if stats := mustStats(t, reg); stats.Size != 0 || stats.SearchCount != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}

	mustAdd(t, reg, "10.0.0.1", "", nil)
	mustAdd(t, reg, "10.0.0.2", "", nil)
	reg.Search("10.0.0.1")
	reg.Search("10.0.0.9") // miss
	reg.Delete("10.0.0.2")
	reg.Update("10.0.0.1", nil, ptr("X"))

	stats := mustStats(t, reg)
	if stats.Size != 1 {
		t.Errorf("Expected size 1, got %d", stats.Size)
	}
	// two searches and one delete, update does not count
	if stats.SearchCount != 3 {
		t.Errorf("Expected search count 3, got %d", stats.SearchCount)
	}
}

func testGenerate(t *testing.T, reg registry.IRegistry) {
	generated, err := reg.Generate(0)
	if err != nil || generated != 0 {
		t.Errorf("Expected 0 generated devices, got %d (err %v)", generated, err)
	}

	generated, err = reg.Generate(5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if generated < 1 || generated > 5 {
		t.Errorf("Expected 1..5 new devices, got %d", generated)
	}

	stats := mustStats(t, reg)
	if stats.Size != generated {
		t.Errorf("Expected size %d, got %d", generated, stats.Size)
	}

	devices, _ := reg.List()
	for _, d := range devices {
		if d.Packet == nil {
			t.Errorf("Expected generated device %s to carry a packet", d.IP)
		}
		if d.Name == "" {
			t.Errorf("Expected generated device %s to have a name", d.IP)
		}
	}

	if _, err = reg.Generate(-1); err == nil {
		t.Errorf("Expected error for negative count")
	}
}

func testClear(t *testing.T, reg registry.IRegistry) {
	mustAdd(t, reg, "10.0.0.1", "a", ptr("PKT-1"))
	mustAdd(t, reg, "10.0.0.2", "b", ptr("PKT-2"))
	reg.Search("10.0.0.1")

	if err := reg.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if stats := mustStats(t, reg); stats.Size != 0 || stats.SearchCount != 0 {
		t.Errorf("Expected zero stats after clear, got %+v", stats)
	}
	if text, _ := reg.Structure(); text != splay.EmptyTree {
		t.Errorf("Expected empty tree after clear, got %q", text)
	}

	// the registry stays usable and names are gone
	mustAdd(t, reg, "10.0.0.1", "", nil)
	device, _, _ := reg.Search("10.0.0.1")
	if device.Name != "Device-1" {
		t.Errorf("Expected default name after clear, got %s", device.Name)
	}
}

func testConcurrentUsage(t *testing.T, reg registry.IRegistry) {
	numWorkers := 8
	opsPerWorker := 200

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	errCh := make(chan error, numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				ip := fmt.Sprintf("10.%d.0.%d", workerId, i)
				if _, err := reg.Add(ip, "", ptr("PKT")); err != nil {
					errCh <- err
					return
				}
				if _, found, err := reg.Search(ip); err != nil || !found {
					errCh <- fmt.Errorf("search %s: found=%v err=%v", ip, found, err)
					return
				}
				if i%4 == 0 {
					if _, err := reg.Delete(ip); err != nil {
						errCh <- err
						return
					}
				}
			}
		}(w)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("Worker error: %v", err)
	}

	expected := numWorkers * (opsPerWorker - opsPerWorker/4)
	stats := mustStats(t, reg)
	if stats.Size != expected {
		t.Errorf("Expected %d devices, got %d", expected, stats.Size)
	}
	if want := uint64(numWorkers * (opsPerWorker + opsPerWorker/4)); stats.SearchCount != want {
		t.Errorf("Expected search count %d, got %d", want, stats.SearchCount)
	}

	devices, _ := reg.List()
	if !sort.SliceIsSorted(devices, func(i, j int) bool { return devices[i].IP < devices[j].IP }) {
		t.Errorf("Expected list to be sorted after concurrent usage")
	}
}
