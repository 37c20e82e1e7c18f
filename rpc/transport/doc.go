// Package transport defines the interfaces for RPC communication between
// ipfinder clients and servers. It provides a common contract that all
// transport implementations must fulfill, so the server and client code does
// not depend on a concrete protocol.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Routing requests by network id (one registry per network)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     handles connection management and request sending.
//
//   - IRPCServerTransport: Interface for server-side transport implementations that
//     receives requests and passes them, together with the network id, to the handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
//
// The HTTP implementation lives in the "github.com/ValentinKolb/ipfinder/rpc/transport/http" package.
package transport
