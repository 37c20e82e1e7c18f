package lregistry

import (
	"sync"

	"github.com/ValentinKolb/ipfinder/lib/gen"
	"github.com/ValentinKolb/ipfinder/lib/registry"
	"github.com/ValentinKolb/ipfinder/lib/splay"
)

// UnknownDevice is reported for IPs that have no recorded name
// (e.g. devices that came from a pre-seeded map).
const UnknownDevice = "Unknown Device"

type registryImpl struct {
	mu    sync.Mutex
	tree  *splay.Map
	names map[string]string
	gen   *gen.Generator
}

// NewLocalRegistry creates a new local registry instance.
// The map is created with factory (nil = empty map) and random devices are
// drawn from generator (nil = generator with default options).
// This registry implementation only works inside a single process.
func NewLocalRegistry(factory registry.MapFactory, generator *gen.Generator) registry.IRegistry {
	if factory == nil {
		factory = EmptyMap
	}
	if generator == nil {
		generator = gen.NewGenerator(nil)
	}
	return &registryImpl{
		tree:  factory(),
		names: make(map[string]string),
		gen:   generator,
	}
}

// EmptyMap is a registry.MapFactory for an empty map.
func EmptyMap() *splay.Map {
	return splay.New()
}

// SeededMap returns a registry.MapFactory for a map pre-populated with
// random devices from generator.
func SeededMap(generator *gen.Generator) registry.MapFactory {
	return func() *splay.Map {
		return splay.New(generator.Seed()...)
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see registry/interface.go)
// --------------------------------------------------------------------------

func (r *registryImpl) Add(ip, name string, packet *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		name = r.gen.DefaultName(ip)
	}
	inserted := r.tree.Insert(ip, packet)
	r.names[ip] = name
	return inserted, nil
}

func (r *registryImpl) Search(ip string) (registry.Device, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := r.tree.Search(ip)
	if node == nil {
		return registry.Device{}, false, nil
	}
	return r.device(node), true, nil
}

func (r *registryImpl) Delete(ip string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.tree.Delete(ip)
	if removed {
		delete(r.names, ip)
	}
	return removed, nil
}

func (r *registryImpl) Update(oldIP string, newIP, newPacket *string) (registry.UpdateResult, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, replacedIP, oldPacket := r.tree.Update(oldIP, newIP, newPacket)
	if !ok {
		return registry.UpdateResult{}, false, nil
	}

	// the name moves with the device
	if replacedIP != nil {
		if name, found := r.names[oldIP]; found {
			r.names[*newIP] = name
		} else {
			delete(r.names, *newIP)
		}
		delete(r.names, oldIP)
	}

	return registry.UpdateResult{OldIP: replacedIP, OldPacket: oldPacket}, true, nil
}

func (r *registryImpl) List() ([]registry.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nodes := r.tree.InOrder()
	devices := make([]registry.Device, len(nodes))
	for i, node := range nodes {
		devices[i] = r.device(node)
	}
	return devices, nil
}

func (r *registryImpl) Structure() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.String(), nil
}

func (r *registryImpl) Stats() (registry.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return registry.Stats{
		Size:        r.tree.Len(),
		SearchCount: r.tree.SearchCount(),
	}, nil
}

func (r *registryImpl) Generate(count int) (int, error) {
	if count < 0 {
		return 0, registry.NewError(registry.RetCInvalidOperation, "count must not be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	generated := 0
	for i := 0; i < count; i++ {
		ip := r.gen.IP()
		packet := r.gen.Packet()

		// existing IPs get the new packet but keep their name
		if r.tree.Insert(ip, &packet) {
			r.names[ip] = r.gen.DeviceName(i + 1)
			generated++
		}
	}
	return generated, nil
}

func (r *registryImpl) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tree = splay.New()
	r.names = make(map[string]string)
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// device converts a node into a registry.Device (caller must hold the lock)
func (r *registryImpl) device(node *splay.Node) registry.Device {
	name, ok := r.names[node.Key()]
	if !ok {
		name = UnknownDevice
	}
	return registry.Device{
		IP:     node.Key(),
		Name:   name,
		Packet: node.Value(),
	}
}
