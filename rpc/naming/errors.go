package naming

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInitialContext is returned for an unsupported initial context factory
	ErrNoInitialContext = errors.New("no initial context for factory")
	// ErrInvalidProviderURL is returned when the provider URL can not be used
	ErrInvalidProviderURL = errors.New("invalid provider url")
	// ErrNameNotFound is returned when the provider has nothing bound to a name
	ErrNameNotFound = errors.New("name not found")
)

// NamingError wraps every failure of a lookup with the name and provider involved
type NamingError struct {
	Name     string
	Provider string
	Err      error
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("naming lookup of %q at %s: %v", e.Name, e.Provider, e.Err)
}

func (e *NamingError) Unwrap() error {
	return e.Err
}
