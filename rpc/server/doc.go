// Package server implements the RPC server of ipfinder. It hosts one device
// registry per configured network and answers requests for them through an
// adapter that translates messages into registry.IRegistry calls.
//
// The package focuses on:
//   - Server-side RPC request handling for registry operations
//   - Adapter pattern to decouple the registry from the RPC mechanics
//   - Creation of empty or pre-seeded registries from the network configuration
//   - Request metrics via VictoriaMetrics
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server adapters,
//     with the Handle method that processes incoming requests against a registry.
//
//   - NewIRegistryServerAdapter: Factory function creating the adapter for
//     registry operations.
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transport and serializer mechanisms.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Networks: []common.ServerNetwork{
//	    {NetworkID: 1, Type: common.NetworkTypeEmpty},
//	    {NetworkID: 2, Type: common.NetworkTypeRandom},
//	  },
//	  SeedCount: 11,
//	  Endpoint: "0.0.0.0:8080",
//	  TimeoutSecond: 5,
//	  LogLevel: "info",
//	}
//
//	s := server.NewRPCServer(
//	  config,
//	  http.NewHttpServerTransport(),
//	  serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Metrics:
//
//	ipfinder_rpc_requests_total{type}            requests per message type
//	ipfinder_rpc_request_duration_seconds{type}  handling time per message type
//	ipfinder_rpc_errors_total                    responses carrying an error
//	ipfinder_network_devices{network}            devices per network
//	ipfinder_network_searches{network}           search count per network
//
// Thread Safety:
//
//	The server handles requests concurrently. Every registry serializes its
//	own calls. Serve is not thread-safe and should be called only once.
package server
