// Package rpc provides the remote access layer of ipfinder. It lets clients
// use device registries hosted by a server process.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, configuration structures, and logging.
//
//   - transport: Network communication abstractions with an HTTP implementation.
//
//   - serializer: Message serialization with multiple format options (Binary, JSON, GOB)
//     for converting between Message objects and byte arrays.
//
//   - client: RPC client implementing the registry.IRegistry interface.
//
//   - server: RPC server hosting one registry per network, including the
//     adapter that maps messages to registry calls.
package rpc
