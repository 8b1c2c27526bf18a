package ejb

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme is the prefix every lookup key must start with
	Scheme = "ejb:"

	statefulSuffix = "?stateful"
	viewSeparator  = "!"
	emptySegment   = "-"
)

// ErrInvalidName is returned (wrapped) when a lookup key can not be parsed
var ErrInvalidName = errors.New("invalid ejb name")

// Locator identifies a remote component and the interface it is called through
type Locator struct {
	AppName      string
	ModuleName   string
	DistinctName string
	BeanName     string
	ViewType     string
	Stateful     bool
}

// ParseName parses a lookup key of the form ejb:<app>/<module>[/<distinct>]/<bean>!<view>[?stateful]
func ParseName(name string) (Locator, error) {
	rest, ok := strings.CutPrefix(name, Scheme)
	if !ok {
		return Locator{}, fmt.Errorf("%w: %q does not start with %q", ErrInvalidName, name, Scheme)
	}

	rest, stateful := strings.CutSuffix(rest, statefulSuffix)

	path, view, ok := strings.Cut(rest, viewSeparator)
	if !ok || view == "" {
		return Locator{}, fmt.Errorf("%w: %q has no view type", ErrInvalidName, name)
	}

	loc := Locator{ViewType: view, Stateful: stateful}

	segments := strings.Split(path, "/")
	switch len(segments) {
	case 2:
		loc.ModuleName, loc.BeanName = segments[0], segments[1]
	case 3:
		loc.AppName, loc.ModuleName, loc.BeanName = segments[0], segments[1], segments[2]
	case 4:
		loc.AppName, loc.ModuleName, loc.DistinctName, loc.BeanName = segments[0], segments[1], segments[2], segments[3]
	default:
		return Locator{}, fmt.Errorf("%w: %q must have 2 to 4 path segments, got %d", ErrInvalidName, name, len(segments))
	}

	if loc.ModuleName == "" {
		return Locator{}, fmt.Errorf("%w: %q has no module name", ErrInvalidName, name)
	}
	if loc.BeanName == "" {
		return Locator{}, fmt.Errorf("%w: %q has no bean name", ErrInvalidName, name)
	}

	return loc, nil
}

// String renders the canonical lookup key for the locator
func (l Locator) String() string {
	var sb strings.Builder
	sb.WriteString(Scheme)
	sb.WriteString(l.AppName)
	sb.WriteString("/")
	sb.WriteString(l.ModuleName)
	if l.DistinctName != "" {
		sb.WriteString("/")
		sb.WriteString(l.DistinctName)
	}
	sb.WriteString("/")
	sb.WriteString(l.BeanName)
	sb.WriteString(viewSeparator)
	sb.WriteString(l.ViewType)
	if l.Stateful {
		sb.WriteString(statefulSuffix)
	}
	return sb.String()
}

// InvocationPath returns the path (relative to the provider URL) a method of this
// component is invoked on. Empty segments are written as "-".
func (l Locator) InvocationPath(method string) string {
	segments := []string{
		"ejb", "v1", "invoke",
		orEmptySegment(l.AppName),
		orEmptySegment(l.ModuleName),
		orEmptySegment(l.DistinctName),
		l.BeanName,
		l.ViewType,
		method,
	}
	for i := 3; i < len(segments); i++ {
		segments[i] = url.PathEscape(segments[i])
	}
	return strings.Join(segments, "/")
}

// FromPathSegment reverses the "-" placeholder used by InvocationPath
func FromPathSegment(segment string) string {
	if segment == emptySegment {
		return ""
	}
	return segment
}

func orEmptySegment(s string) string {
	if s == "" {
		return emptySegment
	}
	return s
}
