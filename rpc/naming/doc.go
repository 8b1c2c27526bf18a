// Package naming resolves lookup keys into handles for remote components.
//
// An InitialContext is created from an Environment that names the context
// factory and the provider URL. Lookup parses the key locally and then asks
// the provider whether something is bound to it; only then is a handle
// created. Errors from a lookup are *NamingError values that wrap one of
// ErrNameNotFound, ejb.ErrInvalidName or the transport failure, while
// configuration problems (ErrNoInitialContext, ErrInvalidProviderURL) are
// reported by NewInitialContext before any request is sent.
//
// Usage Example:
//
//	ctx, err := naming.NewInitialContext(naming.Environment{
//	  Factory:     naming.WildFlyInitialContextFactory,
//	  ProviderURL: "https://localhost:8443/wildfly-services",
//	}, transport, serializer)
//	if err != nil {
//	  return err
//	}
//	echo, err := ctx.LookupEchoService("ejb:/ejb-over-https-server-side/EchoServiceBean!org.jboss.as.quickstarts.ejb.remote.EchoService")
package naming
