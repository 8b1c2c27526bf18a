// Package rpc is the communication layer of echoprobe. It resolves remote
// components through a naming provider and calls them over HTTP(S).
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, configuration structures, and logging.
//
//   - serializer: Message serialization with multiple format options (Binary, JSON, GOB)
//     for converting between Message objects and byte arrays.
//
//   - transport: The client transport abstraction and its HTTP implementation,
//     including the per-target session context.
//
//   - client: Typed handles for remote components (the echo service) and the
//     shared request/response round trip.
//
//   - naming: Initial contexts that look up names at a provider and return handles.
//
//   - testing: An in-process echo endpoint used by the tests of the other packages.
package rpc
