package probe

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/ValentinKolb/echoprobe/lib/ejb"
	"github.com/ValentinKolb/echoprobe/rpc/client"
	"github.com/ValentinKolb/echoprobe/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("probe")

const (
	// HTTPEndpoint is used when SSL is off
	HTTPEndpoint = "http://localhost:8080/wildfly-services"
	// HTTPSEndpoint is used when SSL is on
	HTTPSEndpoint = "https://localhost:8443/wildfly-services"

	// DefaultLookupName is the lookup key of the echo component
	DefaultLookupName = "ejb:/ejb-over-https-server-side/EchoServiceBean!org.jboss.as.quickstarts.ejb.remote.EchoService"

	// DefaultLoops is the number of iterations of a run
	DefaultLoops = 10

	// ShortMessage is the first message of every iteration
	ShortMessage = "Hello World!"

	largeMessageUnit   = "Hello World "
	largeMessageRepeat = 10000
)

// LargeMessage returns "Hello World " repeated 10000 times (120000 chars)
func LargeMessage() string {
	return strings.Repeat(largeMessageUnit, largeMessageRepeat)
}

// Config controls a run. It is read once by the caller and not changed during a run.
type Config struct {
	Loops         int
	SSL           bool
	HTTPEndpoint  string
	HTTPSEndpoint string
	LookupName    string
}

// DefaultConfig returns 10 loops over plain http against the local endpoints
func DefaultConfig() Config {
	return Config{
		Loops:         DefaultLoops,
		SSL:           false,
		HTTPEndpoint:  HTTPEndpoint,
		HTTPSEndpoint: HTTPSEndpoint,
		LookupName:    DefaultLookupName,
	}
}

// EndpointURL returns the https endpoint if SSL is set and the http endpoint otherwise
func (c Config) EndpointURL() string {
	if c.SSL {
		return c.HTTPSEndpoint
	}
	return c.HTTPEndpoint
}

// LookupFunc resolves name at the provider endpointURL into an echo handle
type LookupFunc func(endpointURL, name string) (client.IEchoService, error)

// Environment holds the collaborators of a run
type Environment struct {
	// Sessions is the transport context whose session is cleared every iteration
	Sessions transport.ISessionContext
	// Lookup performs the naming lookup
	Lookup LookupFunc
	// Out receives the progress lines, nil discards them
	Out io.Writer
	// Metrics is optional
	Metrics *Metrics
}

// Run performs config.Loops iterations and stops at the first failure.
// A run with Loops <= 0 does nothing.
func Run(config Config, env Environment) error {
	if config.Loops <= 0 {
		Logger.Infof("Nothing to do for %d loops", config.Loops)
		return nil
	}
	if env.Lookup == nil {
		return errors.New("probe: no lookup function")
	}
	if env.Sessions == nil {
		return errors.New("probe: no session context")
	}
	if env.Out == nil {
		env.Out = io.Discard
	}

	large := LargeMessage()
	start := time.Now()

	for i := 1; i <= config.Loops; i++ {
		if err := runIteration(i, config, env, large); err != nil {
			Logger.Errorf("Iteration %d failed: %v", i, err)
			return err
		}
	}

	Logger.Infof("%d iterations completed in %s", config.Loops, time.Since(start))
	return nil
}

// runIteration performs one lookup and double echo
func runIteration(i int, config Config, env Environment, large string) error {
	env.Metrics.iteration()

	endpoint := config.EndpointURL()
	fmt.Fprintf(env.Out, "[%d/%d] endpoint %s\n", i, config.Loops, endpoint)

	uri, err := parseEndpoint(endpoint)
	if err != nil {
		return fmt.Errorf("iteration %d: %w", i, err)
	}

	env.Sessions.ClearSessionID(uri)
	fmt.Fprintf(env.Out, "[%d/%d] cleared session for %s\n", i, config.Loops, uri)

	lookupStart := time.Now()
	echo, err := env.Lookup(endpoint, config.LookupName)
	env.Metrics.lookup(lookupStart, err)
	if err != nil {
		return fmt.Errorf("iteration %d: lookup failed: %w", i, err)
	}

	affinity := ejb.ForURI(uri)
	echo.SetStrongAffinity(affinity)
	fmt.Fprintf(env.Out, "[%d/%d] strong affinity %s\n", i, config.Loops, affinity)

	if _, err := echoAndCompare(i, echo, PayloadShort, ShortMessage, env.Metrics); err != nil {
		return err
	}

	result, err := echoAndCompare(i, echo, PayloadLarge, large, env.Metrics)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "[%d/%d] large message length %d\n", i, config.Loops, len(result))

	return nil
}

// echoAndCompare echoes message and fails unless the exact message comes back
func echoAndCompare(i int, echo client.IEchoService, kind PayloadKind, message string, m *Metrics) (string, error) {
	start := time.Now()
	result, err := echo.Echo(message)
	m.echo(kind, start, err)
	if err != nil {
		return "", fmt.Errorf("iteration %d: %s echo failed: %w", i, kind, err)
	}

	if result != message {
		m.mismatch()
		return "", &MismatchError{
			Iteration:      i,
			Payload:        kind,
			SentLength:     len(message),
			ReceivedLength: len(result),
		}
	}

	Logger.Debugf("Iteration %d: %s echo of %d chars ok", i, kind, len(result))
	return result, nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	uri, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if uri.Scheme == "" || uri.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host are required", endpoint)
	}
	return uri, nil
}
