package ejb

import (
	"fmt"
	"net/url"
)

// Affinity is a routing hint for the calls made through a remote handle.
// The zero value is None.
type Affinity struct {
	uri *url.URL
}

// None lets calls go to whatever node the handle was resolved from
var None = Affinity{}

// ForURI returns a strong affinity to the node at uri.
// The uri is copied, later changes to it do not affect the affinity.
func ForURI(uri *url.URL) Affinity {
	if uri == nil {
		return None
	}
	u := *uri
	return Affinity{uri: &u}
}

// IsNone reports whether the affinity leaves routing to the transport
func (a Affinity) IsNone() bool {
	return a.uri == nil
}

// URI returns the pinned node or nil for None
func (a Affinity) URI() *url.URL {
	return a.uri
}

// Target returns the URI calls have to be sent to, fallback is used for None
func (a Affinity) Target(fallback *url.URL) *url.URL {
	if a.uri == nil {
		return fallback
	}
	return a.uri
}

func (a Affinity) String() string {
	if a.uri == nil {
		return "None"
	}
	return fmt.Sprintf("URI<%s>", a.uri.String())
}
