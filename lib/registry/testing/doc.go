// Package testing provides standardised tests and benchmarks for
// device registries that satisfy the registry.IRegistry interface.
//
// The package contains:
//   - testing: A conformance suite for the IRegistry contract (naming, update
//     semantics, search counting, ordering, concurrent use)
//   - benchmark: Performance tests for common registry operations
//
// The same suite is run against the local registry and against the RPC client,
// so both must behave identically.
//
// Example usage:
//
//	factory := func() registry.IRegistry {
//		return lregistry.NewLocalRegistry(lregistry.EmptyMap, nil)
//	}
//
//	testing.RunRegistryTests(t, "LocalRegistry", factory)
//	testing.RunRegistryBenchmarks(b, "LocalRegistry", factory)
package testing
