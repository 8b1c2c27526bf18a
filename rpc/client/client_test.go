package client

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/ValentinKolb/echoprobe/lib/ejb"
	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	rpctesting "github.com/ValentinKolb/echoprobe/rpc/testing"
	transporthttp "github.com/ValentinKolb/echoprobe/rpc/transport/http"
)

// setupEcho starts two echo endpoints and returns a handle resolved from the first one
func setupEcho(t *testing.T) (IEchoService, *rpctesting.EchoEndpoint, *rpctesting.EchoEndpoint, *url.URL) {
	t.Helper()

	s := serializer.NewBinarySerializer()
	first, err := rpctesting.NewEchoEndpoint(s)
	if err != nil {
		t.Fatalf("NewEchoEndpoint failed: %v", err)
	}
	second, err := rpctesting.NewEchoEndpoint(s)
	if err != nil {
		t.Fatalf("NewEchoEndpoint failed: %v", err)
	}

	provider, _ := url.Parse(rpctesting.Start(t, first, false))
	other, _ := url.Parse(rpctesting.Start(t, second, false))

	tr := transporthttp.NewHttpClientTransportWithSessions(transporthttp.NewSessionContext())
	if err := tr.Connect(common.ClientConfig{TimeoutSecond: 5, RetryCount: 1}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })

	locator, _ := ejb.ParseName(rpctesting.EchoServiceName)
	return NewRPCEchoService(locator, provider, tr, s), first, second, other
}

// TestEchoAffinity tests that calls follow the strong affinity of the handle
func TestEchoAffinity(t *testing.T) {
	echo, first, second, other := setupEcho(t)

	if !echo.StrongAffinity().IsNone() {
		t.Errorf("Expected no affinity on a new handle, got %s", echo.StrongAffinity())
	}

	got, err := echo.Echo("Hello World!")
	if err != nil || got != "Hello World!" {
		t.Fatalf("Echo returned %q, %v", got, err)
	}
	if len(first.Invocations()) != 1 || len(second.Invocations()) != 0 {
		t.Errorf("Without affinity calls must go to the provider")
	}

	echo.SetStrongAffinity(ejb.ForURI(other))
	large := strings.Repeat("Hello World ", 10000)
	got, err = echo.Echo(large)
	if err != nil || got != large {
		t.Fatalf("Large echo failed: %d chars, %v", len(got), err)
	}
	if len(first.Invocations()) != 1 || len(second.Invocations()) != 1 {
		t.Errorf("With affinity calls must go to the pinned node")
	}

	echo.SetStrongAffinity(ejb.None)
	if _, err := echo.Echo(""); err != nil {
		t.Fatalf("Empty echo failed: %v", err)
	}
	if len(first.Invocations()) != 2 {
		t.Errorf("Resetting the affinity must route to the provider again")
	}
}

// TestRemoteError tests that error responses of the server surface as *RemoteError
func TestRemoteError(t *testing.T) {
	echo, _, _, _ := setupEcho(t)

	// a handle for a component that is not deployed
	handle := echo.(*rpcEchoService)
	handle.locator = ejb.Locator{ModuleName: "missing", BeanName: "MissingBean", ViewType: "org.example.Missing"}

	_, err := echo.Echo("Hello World!")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *RemoteError, got %v", err)
	}
	if remoteErr.MsgType != common.MsgTInvoke {
		t.Errorf("Expected invoke message type, got %s", remoteErr.MsgType)
	}
	if !strings.Contains(remoteErr.Message, "no component deployed") {
		t.Errorf("Unexpected remote message %q", remoteErr.Message)
	}
}
