package http

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

// LoggerName is the logger of the client transport
const LoggerName = "transport/rpc"

var Logger = logger.GetLogger(LoggerName)

// ContentType is sent with every request body
const ContentType = "application/x-echoprobe-message"

// NewHttpClientTransport creates a transport that keeps its sessions in the
// process-wide CurrentSessionContext
func NewHttpClientTransport() transport.IRPCClientTransport {
	return NewHttpClientTransportWithSessions(CurrentSessionContext())
}

// NewHttpClientTransportWithSessions creates a transport that keeps its sessions in sessions
func NewHttpClientTransportWithSessions(sessions *SessionContext) transport.IRPCClientTransport {
	return &httpClientTransport{sessions: sessions}
}

type httpClientTransport struct {
	client     *http.Client
	sessions   *SessionContext
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	tlsConfig, err := newTLSConfig(config.TLS)
	if err != nil {
		return err
	}

	idlePerHost := config.MaxIdleConnsPerHost
	if idlePerHost < 1 {
		idlePerHost = 1
	}

	// Create client with default transport
	client := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			TLSClientConfig:     tlsConfig,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: idlePerHost,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	if config.TimeoutSecond > 0 {
		client.Timeout = time.Duration(config.TimeoutSecond) * time.Second
	}

	// Close the previous client if Connect is called again
	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	t.client = client
	t.retryCount = config.RetryCount

	return nil
}

func (t *httpClientTransport) Send(target *url.URL, path string, req []byte) (resp []byte, err error) {
	// Check if the transport is initialized
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}
	if target == nil {
		return nil, fmt.Errorf("http transport: no target")
	}

	requestURL := target.JoinPath(path).String()
	targetCtx := t.sessions.GetTargetContext(target)

	// Send the request (with retries), always at least once
	attempts := t.retryCount
	if attempts < 1 {
		attempts = 1
	}

	var httpResponse *http.Response
	for i := 0; i < attempts; i++ {
		httpResponse, err = t.do(requestURL, targetCtx, req)
		if err == nil {
			break
		}
		Logger.Debugf("Request attempt %d/%d to %s failed: %v", i+1, attempts, requestURL, err)

		// the target may have received the request, it must not be sent twice
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	// Remember the session the target assigned to us
	for _, cookie := range httpResponse.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" && cookie.Value != targetCtx.SessionID() {
			targetCtx.SetSessionID(cookie.Value)
			Logger.Debugf("New session %s for %s", cookie.Value, targetCtx.URI())
		}
	}

	// Check if the response status code is OK
	if httpResponse.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResponse.Body, 512))
		return nil, fmt.Errorf("http error: %s: %s", httpResponse.Status, bytes.TrimSpace(body))
	}

	// Read the response body
	return io.ReadAll(httpResponse.Body)
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	t.client = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do sends one attempt. The body reader is created per attempt so retries resend the full request.
func (t *httpClientTransport) do(requestURL string, targetCtx *TargetContext, req []byte) (*http.Response, error) {
	httpRequest, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(req))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", ContentType)

	if sessionID := targetCtx.SessionID(); sessionID != "" {
		httpRequest.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}

	return t.client.Do(httpRequest)
}

// newTLSConfig builds the client TLS settings, nil means the net/http defaults
func newTLSConfig(conf common.TLSConfig) (*tls.Config, error) {
	if !conf.InsecureSkipVerify && conf.CAFile == "" {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: conf.InsecureSkipVerify,
	}

	if conf.CAFile != "" {
		pem, err := os.ReadFile(conf.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}

		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA file %s", conf.CAFile)
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}
