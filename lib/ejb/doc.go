// Package ejb describes remote components the way the naming service addresses them.
// It has no network code of its own; the rpc packages use it to build lookup keys,
// invocation paths and routing hints.
//
// Key Components:
//
//   - Locator: The parsed form of a lookup key such as
//     "ejb:/ejb-over-https-server-side/EchoServiceBean!org.jboss.as.quickstarts.ejb.remote.EchoService".
//     It identifies the deployment (app, module, distinct name), the bean and the
//     interface (view) the bean is called through.
//
//   - Affinity: A routing hint attached to a remote handle. None lets the transport
//     send calls to the provider the handle was looked up from, a URI affinity pins
//     every call to one node.
//
// Name Format:
//
//	ejb:<app>/<module>[/<distinct>]/<bean>!<view>[?stateful]
//
//	The app name may be empty, in which case the name starts with "ejb:/".
//	A name with only two path segments is read as <module>/<bean>.
package ejb
