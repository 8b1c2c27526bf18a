package transport

import (
	"net/url"

	"github.com/ValentinKolb/echoprobe/rpc/common"
)

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to path below target and returns the response.
	// target is the provider or the node a handle has affinity to.
	Send(target *url.URL, path string, req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}

// ISessionContext gives access to the sessions a transport keeps per target
type ISessionContext interface {
	// ClearSessionID drops the session bound to uri, the next request starts a new one.
	// Clearing is best-effort, a target without a session is left as is.
	ClearSessionID(uri *url.URL)
}
