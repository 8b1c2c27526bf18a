package testing

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/echoprobe/lib/ejb"
	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	transporthttp "github.com/ValentinKolb/echoprobe/rpc/transport/http"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
)

// LoggerName is the logger the endpoint writes to, separate from the client transport
const LoggerName = "rpc/testing"

var Logger = logger.GetLogger(LoggerName)

const (
	// BasePath is the path the endpoint is mounted on, the same as a real server's
	BasePath = "/wildfly-services"

	// EchoServiceName is the name the endpoint binds by default
	EchoServiceName = "ejb:/ejb-over-https-server-side/EchoServiceBean!org.jboss.as.quickstarts.ejb.remote.EchoService"
)

// Invocation records one call the endpoint received
type Invocation struct {
	SessionID string
	Locator   ejb.Locator
	Method    string
	ArgSize   int
}

// EchoEndpoint is an in-process stand-in for a server with a deployed echo component.
// It speaks the same protocol as the http transport and records what it receives.
type EchoEndpoint struct {
	serializer serializer.IRPCSerializer
	bound      map[string]ejb.Locator

	mu          sync.Mutex
	mutate      func(string) string
	sessions    map[string]struct{}
	lookups     int
	invocations []Invocation
}

// NewEchoEndpoint creates an endpoint that binds the echo component under every
// name in names (EchoServiceName if none are given)
func NewEchoEndpoint(s serializer.IRPCSerializer, names ...string) (*EchoEndpoint, error) {
	if len(names) == 0 {
		names = []string{EchoServiceName}
	}

	bound := make(map[string]ejb.Locator, len(names))
	for _, name := range names {
		loc, err := ejb.ParseName(name)
		if err != nil {
			return nil, err
		}
		bound[loc.String()] = loc
	}

	return &EchoEndpoint{
		serializer: s,
		bound:      bound,
		sessions:   make(map[string]struct{}),
	}, nil
}

// Start serves the endpoint on a new httptest server (TLS if secure) that is closed
// with the test. It returns the provider URL of the endpoint.
func Start(t testing.TB, e *EchoEndpoint, secure bool) string {
	t.Helper()

	var server *httptest.Server
	if secure {
		server = httptest.NewTLSServer(e.Handler())
	} else {
		server = httptest.NewServer(e.Handler())
	}
	t.Cleanup(server.Close)

	return server.URL + BasePath
}

// SetMutator makes the endpoint answer echo calls with f(arg) instead of arg
func (e *EchoEndpoint) SetMutator(f func(string) string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutate = f
}

// Lookups returns how many lookups the endpoint answered
func (e *EchoEndpoint) Lookups() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookups
}

// Invocations returns a copy of all recorded invocations
func (e *EchoEndpoint) Invocations() []Invocation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Invocation(nil), e.invocations...)
}

// SessionsCreated returns how many sessions the endpoint handed out
func (e *EchoEndpoint) SessionsCreated() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// Handler returns the http handler of the endpoint
func (e *EchoEndpoint) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+BasePath+"/naming/v1/lookup", loggerMiddleware(e.handleLookup))
	mux.HandleFunc("POST "+BasePath+"/ejb/v1/invoke/{app}/{module}/{distinct}/{bean}/{view}/{method}", loggerMiddleware(e.handleInvoke))
	return mux
}

// --------------------------------------------------------------------------
// Handlers
// --------------------------------------------------------------------------

// handleLookup answers whether a name is bound
func (e *EchoEndpoint) handleLookup(w http.ResponseWriter, r *http.Request) {
	req, ok := e.readRequest(w, r)
	if !ok {
		return
	}
	e.session(w, r)

	e.mu.Lock()
	e.lookups++
	e.mu.Unlock()

	if req.MsgType != common.MsgTLookup {
		e.writeResponse(w, common.NewErrorResponse(fmt.Sprintf("unsupported message type: %s", req.MsgType)))
		return
	}

	loc, err := ejb.ParseName(req.Key)
	if err != nil {
		e.writeResponse(w, common.NewLookupResponse("", false, err))
		return
	}

	if _, bound := e.bound[loc.String()]; !bound {
		e.writeResponse(w, common.NewLookupResponse("", false, nil))
		return
	}
	e.writeResponse(w, common.NewLookupResponse(loc.String(), true, nil))
}

// handleInvoke echoes the argument of an echo call back
func (e *EchoEndpoint) handleInvoke(w http.ResponseWriter, r *http.Request) {
	req, ok := e.readRequest(w, r)
	if !ok {
		return
	}
	sessionID := e.session(w, r)

	loc := ejb.Locator{
		AppName:      ejb.FromPathSegment(r.PathValue("app")),
		ModuleName:   ejb.FromPathSegment(r.PathValue("module")),
		DistinctName: ejb.FromPathSegment(r.PathValue("distinct")),
		BeanName:     r.PathValue("bean"),
		ViewType:     r.PathValue("view"),
	}
	method := r.PathValue("method")

	e.mu.Lock()
	e.invocations = append(e.invocations, Invocation{
		SessionID: sessionID,
		Locator:   loc,
		Method:    method,
		ArgSize:   len(req.Value),
	})
	mutate := e.mutate
	e.mu.Unlock()

	if _, bound := e.bound[loc.String()]; !bound {
		e.writeResponse(w, common.NewErrorResponse(fmt.Sprintf("no component deployed at %s", loc)))
		return
	}
	if req.MsgType != common.MsgTInvoke || req.Key != method || method != "echo" {
		e.writeResponse(w, common.NewErrorResponse(fmt.Sprintf("unsupported invocation %s %s", req.MsgType, req.Key)))
		return
	}

	result := string(req.Value)
	if mutate != nil {
		result = mutate(result)
	}
	e.writeResponse(w, common.NewInvokeResponse([]byte(result), nil))
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// session returns the session of the request, a new one is created and set as cookie
// if the request has none or an unknown one
func (e *EchoEndpoint) session(w http.ResponseWriter, r *http.Request) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cookie, err := r.Cookie(transporthttp.SessionCookieName); err == nil {
		if _, known := e.sessions[cookie.Value]; known {
			return cookie.Value
		}
	}

	id := uuid.NewString()
	e.sessions[id] = struct{}{}
	http.SetCookie(w, &http.Cookie{Name: transporthttp.SessionCookieName, Value: id, Path: BasePath})
	return id
}

func (e *EchoEndpoint) readRequest(w http.ResponseWriter, r *http.Request) (*common.Message, bool) {
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}

	req := &common.Message{}
	if err := e.serializer.Deserialize(body, req); err != nil {
		e.writeResponse(w, common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err)))
		return nil, false
	}
	return req, true
}

func (e *EchoEndpoint) writeResponse(w http.ResponseWriter, resp *common.Message) {
	val, err := e.serializer.Serialize(*resp)
	if err != nil {
		http.Error(w, "Failed to serialize response", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(val); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}

// loggerMiddleware logs every request at debug level
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		Logger.Debugf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	}
}
