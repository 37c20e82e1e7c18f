// Package lregistry implements a local, in-memory device registry based on the
// registry.IRegistry interface. It wraps a single splay.Map together with the
// table of device names and the random device generator.
//
// Key Features:
//   - Pure in-memory storage without persistence
//   - Devices keyed by IP address in a splay tree, so repeated lookups of the
//     same device are cheap
//   - Default device names ("Device-<last octet>") for devices added without one
//   - Random device generation for demos and tests
//
// Implementation Details:
//
//   - Locking: The splay map is not safe for concurrent use and even a search
//     rotates the tree. The registry therefore guards every call, reads
//     included, with one exclusive sync.Mutex. A read-write lock would not help.
//
//   - Names: Device names are kept in a plain map next to the tree. Delete drops
//     the name, Update moves it to the new IP, Clear drops all of them. Devices
//     without a recorded name are reported as "Unknown Device".
//
//   - Map Factories: The initial map comes from a registry.MapFactory. EmptyMap
//     starts empty, SeededMap pre-populates the map with generated devices.
//     Clear always starts over with an empty map.
//
// Usage Example:
//
//	reg := lregistry.NewLocalRegistry(lregistry.EmptyMap, nil)
//
//	packet := "PKT-1234"
//	inserted, _ := reg.Add("192.168.1.10", "printer", &packet)
//
//	device, found, _ := reg.Search("192.168.1.10")
package lregistry
