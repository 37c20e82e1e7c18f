// Package registry provides the interface of a device registry: a set of
// network devices keyed by IP address, each with a name and an optional data
// packet. It is the layer between the splay map and everything that serves or
// displays devices (the RPC server, the RPC client and the CLI).
//
// The package focuses on:
//   - A unified interface (IRegistry) for local and remote registries
//   - Pluggable construction of the underlying splay map through MapFactory
//
// Key Components:
//
//   - IRegistry Interface: Add, Search, Delete, Update, List, Structure, Stats,
//     Generate and Clear. Missing devices are reported through boolean results,
//     never through errors.
//
//   - Error System: Error carries a RetCode and a message, so callers can tell
//     invalid operations (e.g. a negative generate count) from internal failures.
//
//   - MapFactory: Creates the initial splay map, either empty or pre-seeded with
//     generated devices.
//
// Implementations:
//
//	- Local Registry (lregistry): An in-memory registry guarded by one mutex.
//	  Available in the "github.com/ValentinKolb/ipfinder/lib/registry/lregistry" package.
//
//	- RPC Registry: A client that forwards every call to an ipfinder server.
//	  Available in the "github.com/ValentinKolb/ipfinder/rpc/client" package.
package registry
