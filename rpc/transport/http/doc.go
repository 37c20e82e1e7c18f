// Package http implements an HTTP-based transport layer for the ipfinder RPC
// system. It provides concrete implementations of the transport interfaces
// defined in the parent package.
//
// The package focuses on:
//   - Client-side HTTP transport for sending RPC requests to servers
//   - Server-side HTTP transport for receiving and handling RPC requests
//   - Round-robin selection across multiple server endpoints with retries
//   - Request routing based on network IDs
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. Every attempt of a
//     request is sent to the next endpoint (round-robin), up to RetryCount
//     attempts. Requests are bounded by the configured timeout.
//
//   - httpServerTransport: Implements IRPCServerTransport. Serves
//     "POST /{networkId}" for RPC requests and "GET /metrics" with all
//     VictoriaMetrics metrics of the process. With log level debug, every
//     request is logged with its status and duration.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter.
package http
