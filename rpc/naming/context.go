package naming

import (
	"fmt"
	"net/url"

	"github.com/ValentinKolb/echoprobe/lib/ejb"
	"github.com/ValentinKolb/echoprobe/rpc/client"
	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	"github.com/ValentinKolb/echoprobe/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("naming")

const (
	// WildFlyInitialContextFactory is the only initial context factory echoprobe implements
	WildFlyInitialContextFactory = "org.wildfly.naming.client.WildFlyInitialContextFactory"

	// LookupPath is the path below the provider URL lookups are sent to
	LookupPath = "naming/v1/lookup"
)

// Environment configures an InitialContext
type Environment struct {
	// Factory selects the context implementation, empty means WildFlyInitialContextFactory
	Factory string
	// ProviderURL is the http(s) URL of the naming provider
	ProviderURL string
}

// InitialContext resolves names against one provider
type InitialContext struct {
	provider   *url.URL
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// NewInitialContext validates env and creates a context for its provider.
// No request is sent before the first Lookup.
func NewInitialContext(
	env Environment,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*InitialContext, error) {
	if env.Factory != "" && env.Factory != WildFlyInitialContextFactory {
		return nil, fmt.Errorf("%w: %s", ErrNoInitialContext, env.Factory)
	}

	provider, err := url.Parse(env.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProviderURL, err)
	}
	if provider.Scheme != "http" && provider.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q must use http or https", ErrInvalidProviderURL, env.ProviderURL)
	}
	if provider.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidProviderURL, env.ProviderURL)
	}

	return &InitialContext{
		provider:   provider,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// ProviderURL returns the provider this context resolves against
func (c *InitialContext) ProviderURL() *url.URL {
	return c.provider
}

// Lookup resolves name against the provider and returns the locator of the bound component
func (c *InitialContext) Lookup(name string) (ejb.Locator, error) {
	locator, err := ejb.ParseName(name)
	if err != nil {
		return ejb.Locator{}, &NamingError{Name: name, Provider: c.provider.String(), Err: err}
	}

	Logger.Debugf("Looking up %s at %s", name, c.provider)

	resp, err := client.Invoke(c.provider, LookupPath, common.NewLookupRequest(locator.String()), c.transport, c.serializer)
	if err != nil {
		return ejb.Locator{}, &NamingError{Name: name, Provider: c.provider.String(), Err: err}
	}
	if !resp.Ok {
		return ejb.Locator{}, &NamingError{Name: name, Provider: c.provider.String(), Err: ErrNameNotFound}
	}

	// the provider may answer with its own canonical form of the name
	if len(resp.Meta) > 0 {
		resolved, err := ejb.ParseName(string(resp.Meta))
		if err != nil {
			return ejb.Locator{}, &NamingError{Name: name, Provider: c.provider.String(), Err: err}
		}
		locator = resolved
	}

	return locator, nil
}

// LookupEchoService resolves name and returns a handle for the echo component bound to it
func (c *InitialContext) LookupEchoService(name string) (client.IEchoService, error) {
	locator, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	return client.NewRPCEchoService(locator, c.provider, c.transport, c.serializer), nil
}

// LookupEchoService creates an initial context for env and resolves name through it
func LookupEchoService(
	env Environment,
	name string,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (client.IEchoService, error) {
	ctx, err := NewInitialContext(env, transport, serializer)
	if err != nil {
		return nil, err
	}
	return ctx.LookupEchoService(name)
}
