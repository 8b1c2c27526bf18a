package http

import (
	"net/url"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// SessionCookieName is the cookie the server uses to identify a session
const SessionCookieName = "JSESSIONID"

// TargetContext holds the transport state for one target URI
type TargetContext struct {
	uri       string
	mu        sync.Mutex
	sessionID string
}

// URI returns the target this context belongs to
func (c *TargetContext) URI() string {
	return c.uri
}

// SessionID returns the current session id, empty if there is none
func (c *TargetContext) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// SetSessionID stores the session id issued by the target
func (c *TargetContext) SetSessionID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
}

// ClearSessionID removes the current session id
func (c *TargetContext) ClearSessionID() {
	c.SetSessionID("")
}

// SessionContext keeps a TargetContext per target URI.
// It is shared by all transports created with it and safe for concurrent use.
type SessionContext struct {
	targets *xsync.MapOf[string, *TargetContext]
}

var current = NewSessionContext()

// CurrentSessionContext returns the process-wide session context used by
// NewHttpClientTransport
func CurrentSessionContext() *SessionContext {
	return current
}

// NewSessionContext creates an empty session context
func NewSessionContext() *SessionContext {
	return &SessionContext{
		targets: xsync.NewMapOf[string, *TargetContext](),
	}
}

// GetTargetContext returns the context for uri, creating it on first use
func (c *SessionContext) GetTargetContext(uri *url.URL) *TargetContext {
	key := targetKey(uri)
	tc, _ := c.targets.LoadOrCompute(key, func() *TargetContext {
		return &TargetContext{uri: key}
	})
	return tc
}

// ClearSessionID implements transport.ISessionContext
func (c *SessionContext) ClearSessionID(uri *url.URL) {
	if tc, ok := c.targets.Load(targetKey(uri)); ok {
		tc.ClearSessionID()
		Logger.Debugf("Cleared session id for %s", tc.uri)
	}
}

// targetKey normalizes a URI so that equal targets share one context
func targetKey(uri *url.URL) string {
	u := url.URL{
		Scheme: strings.ToLower(uri.Scheme),
		Host:   strings.ToLower(uri.Host),
		Path:   strings.TrimSuffix(uri.Path, "/"),
	}
	return u.String()
}
