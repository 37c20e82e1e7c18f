// Package client implements the RPC client of ipfinder. It provides an
// implementation of the registry.IRegistry interface that forwards every call
// to a remote server.
//
// The package focuses on:
//   - Transparent RPC access to a device registry
//   - Integration with the transport and serialization layers
//   - Conversion of error responses into Go errors
//
// Key Components:
//
//   - NewRPCRegistry: Factory function that creates a client implementing the
//     registry.IRegistry interface for a single network of a server.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Endpoints:     []string{"localhost:8080"},
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	}
//
//	reg, _ := client.NewRPCRegistry(1, config, http.NewHttpClientTransport(), serializer.NewBinarySerializer())
//
//	packet := "PKT-1234"
//	reg.Add("192.168.1.10", "printer", &packet)
//	device, found, _ := reg.Search("192.168.1.10")
//
// Error Handling:
//
//	Errors of the remote registry arrive as text and are returned as plain
//	errors, so the registry.Error code is not preserved. Transport and
//	serialization failures are wrapped with %w.
//
// Thread Safety:
//
//	The client is thread-safe as long as the transport is.
package client
