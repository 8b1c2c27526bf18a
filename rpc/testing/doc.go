// Package testing provides an in-process echo endpoint for the tests of the
// naming, client and probe packages.
//
// The endpoint understands the lookup and invocation requests sent by the http
// transport, hands out JSESSIONID sessions and records every call, so tests can
// check which session and which component a call reached. SetMutator turns it
// into a misbehaving server for mismatch tests.
//
// Example usage:
//
//	endpoint, _ := rpctesting.NewEchoEndpoint(serializer.NewJSONSerializer())
//	providerURL := rpctesting.Start(t, endpoint, false)
//	// providerURL is http://127.0.0.1:<port>/wildfly-services
package testing
