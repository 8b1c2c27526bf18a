// Package http implements the HTTP(S) client transport for echoprobe.
//
// Every request is a POST of a serialized common.Message to a path below the
// target URI, e.g. <provider>/naming/v1/lookup or
// <node>/ejb/v1/invoke/<app>/<module>/<distinct>/<bean>/<view>/<method>.
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. It retries failed
//     requests, rejects non-200 answers and configures TLS for https targets
//     (custom CA file or skipped verification for self-signed development servers).
//
//   - SessionContext / TargetContext: The session store shared by all transports.
//     The server assigns a session through the JSESSIONID cookie, the transport
//     stores it per target URI and sends it back on every later request to
//     that target. ClearSessionID forces the next request to start a new session.
//
// Thread Safety:
//
//	The session context is safe for concurrent use. A transport may be used from
//	several goroutines once Connect returned.
package http
