// Package client implements typed handles for remote components.
// A handle is bound to a locator and the provider it was looked up from and
// turns method calls into invocation messages sent through the transport layer.
//
// Key Components:
//
//   - IEchoService: The handle of the echo component, with the single method Echo.
//
//   - IRemoteHandle: What all handles share, the locator and the strong affinity.
//     Without an affinity calls go to the provider; ejb.ForURI pins them to one node.
//
//   - Invoke: The serialize, send, deserialize and check round trip used by the
//     handles and by the naming package. Server-side failures come back as *RemoteError.
//
// Usage Example:
//
//	t := http.NewHttpClientTransport()
//	_ = t.Connect(common.ClientConfig{TimeoutSecond: 10, RetryCount: 3})
//
//	echo, err := naming.LookupEchoService(naming.Environment{
//	  ProviderURL: "http://localhost:8080/wildfly-services",
//	}, "ejb:/ejb-over-https-server-side/EchoServiceBean!org.jboss.as.quickstarts.ejb.remote.EchoService",
//	  t, serializer.NewJSONSerializer())
//
//	uri, _ := url.Parse("http://localhost:8080/wildfly-services")
//	echo.SetStrongAffinity(ejb.ForURI(uri))
//	reply, err := echo.Echo("Hello World!")
//
// Thread Safety:
//
//	A handle may be shared between goroutines for Echo calls. SetStrongAffinity
//	is meant to be called once right after the lookup, before the handle is shared.
package client
