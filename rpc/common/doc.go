// Package common provides core data structures and utilities shared across
// the ipfinder RPC layer. It defines the wire message, the configuration
// structures and the logging setup used by the other rpc packages.
//
// The package focuses on:
//   - Message protocol definition for client/server communication
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication. A single flat
//     struct is used for every request and response, the message type decides
//     which fields are set. Factory functions exist for every operation.
//
//   - MessageType: Enumeration of all registry operations plus the success and
//     error control messages. JSON encodes it as a string.
//
//   - ServerConfig: Networks to serve, generator settings, endpoint and log level.
//
//   - ClientConfig: Endpoints, timeouts and retry behavior of clients.
//
//   - Logger: A logger.ILogger factory that prints "LEVEL | name | message"
//     lines, installed with InitLoggers.
package common
