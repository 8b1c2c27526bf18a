// Package serializer converts common.Message values to and from bytes for the
// echoprobe transport. The echo server and the client must be configured with
// the same serializer.
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must satisfy.
//
//   - binarySerializerImpl: Custom binary format. A flag byte records which optional
//     fields are present, so nil and empty byte slices survive a round trip.
//
//   - jsonSerializerImpl: JSON encoding, useful for debugging with plain HTTP tools.
//     The payload is base64 encoded, which inflates large echo messages by a third.
//
//   - gobSerializerImpl: Go's gob encoding. Empty byte slices come back as nil.
//
// All serializers are stateless and safe for concurrent use.
package serializer
