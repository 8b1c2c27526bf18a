// Package common provides core data structures and utilities shared across
// the echoprobe RPC packages. It defines the wire message, the client
// configuration and the logging setup used by all other packages.
//
// The package focuses on:
//   - Message protocol definition for lookups and invocations
//   - Configuration structures for the client transport
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication. A lookup request
//     carries the name in Key, an invocation carries the method in Key and the
//     argument in Value. Responses report failures in Err.
//
//   - MessageType: Enumeration defining all supported operation types
//     (lookup, invoke, custom) plus the control messages success and error.
//
//   - ClientConfig: Configuration for the client transport, controlling timeouts,
//     retries, connection reuse and TLS.
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logger factory while providing consistent formatting across the application.
package common
