// Package transport defines the interfaces for RPC communication in echoprobe.
// It provides the contract the naming and client packages program against,
// so that lookups and invocations do not depend on a concrete protocol.
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     handles connection management and request sending to a target URI.
//
//   - ISessionContext: Interface for the per-target session state a transport keeps.
//     Callers clear it to force a fresh conversation with a node.
//
// The only implementation is the http subpackage, which serves both http:// and
// https:// targets.
package transport
