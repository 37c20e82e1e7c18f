// Package serializer provides message serialization for the ipfinder RPC
// layer. It defines a common interface and multiple implementations for
// encoding and decoding common.Message values between client and server.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Supporting efficient encoding of the flat message structure
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must satisfy.
//
//   - binarySerializerImpl: Custom binary format. A 16 bit flag field marks
//     which fields are present, only those are written. Empty strings behind
//     pointer fields (e.g. an empty packet) survive the round trip.
//
//   - gobSerializerImpl: Implementation using Go's gob encoding. Gob omits zero
//     values, so a pointer to an empty string arrives as nil and empty device
//     lists arrive as nil.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, useful for debugging
//     (e.g. with curl) or interoperability with other systems. Message types are
//     encoded as strings.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the application:
//
//	  serializer := serializer.NewBinarySerializer()
//	  data, err := serializer.Serialize(message)
//	  // ... send data ...
//	  var receivedMsg common.Message
//	  err = serializer.Deserialize(receivedData, &receivedMsg)
package serializer
