package client

import (
	"net/url"

	"github.com/ValentinKolb/echoprobe/lib/ejb"
	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	"github.com/ValentinKolb/echoprobe/rpc/transport"
)

// EchoMethod is the name of the only method of the echo component
const EchoMethod = "echo"

// IRemoteHandle is implemented by every handle returned from a naming lookup
type IRemoteHandle interface {
	// Locator returns the component the handle calls
	Locator() ejb.Locator
	// SetStrongAffinity routes all later calls on this handle as the affinity says
	SetStrongAffinity(affinity ejb.Affinity)
	// StrongAffinity returns the current affinity, ejb.None if unset
	StrongAffinity() ejb.Affinity
}

// IEchoService is the typed handle of the remote echo component
type IEchoService interface {
	IRemoteHandle
	// Echo sends message to the component and returns what it sent back
	Echo(message string) (string, error)
}

// NewRPCEchoService creates a handle for the echo component at locator.
// Calls go to provider until a strong affinity is set.
// The transport must already be connected.
func NewRPCEchoService(
	locator ejb.Locator,
	provider *url.URL,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) IEchoService {
	return &rpcEchoService{
		rpcProxy: rpcProxy{
			locator:    locator,
			provider:   provider,
			transport:  transport,
			serializer: serializer,
		},
	}
}

// rpcProxy holds what every remote handle needs
// Used by the echo handle with composition pattern
type rpcProxy struct {
	locator    ejb.Locator
	provider   *url.URL
	affinity   ejb.Affinity
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

func (p *rpcProxy) Locator() ejb.Locator {
	return p.locator
}

func (p *rpcProxy) SetStrongAffinity(affinity ejb.Affinity) {
	Logger.Debugf("Strong affinity of %s set to %s", p.locator, affinity)
	p.affinity = affinity
}

func (p *rpcProxy) StrongAffinity() ejb.Affinity {
	return p.affinity
}

// invoke calls method on the node selected by the affinity
func (p *rpcProxy) invoke(method string, arg []byte) (*common.Message, error) {
	target := p.affinity.Target(p.provider)
	req := common.NewInvokeRequest(method, arg)
	return Invoke(target, p.locator.InvocationPath(method), req, p.transport, p.serializer)
}

type rpcEchoService struct {
	rpcProxy
}

func (s *rpcEchoService) Echo(message string) (string, error) {
	resp, err := s.invoke(EchoMethod, []byte(message))
	if err != nil {
		return "", err
	}
	return string(resp.Value), nil
}
