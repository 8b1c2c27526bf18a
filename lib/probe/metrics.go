package probe

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

var summaryPercentiles = []float64{0.5, 0.95, 0.99}

// Metrics collects the counters and latencies of a run.
// All methods accept a nil receiver, a run without metrics just skips them.
type Metrics struct {
	set *metrics.Set

	iterations     *metrics.Counter
	lookups        *metrics.Counter
	lookupFailures *metrics.Counter
	lookupDuration *metrics.Histogram
	echoCalls      *metrics.Counter
	echoFailures   *metrics.Counter
	mismatches     *metrics.Counter
	echoDuration   map[PayloadKind]*metrics.Histogram

	registry gometrics.Registry
	timers   map[PayloadKind]gometrics.Timer
}

// NewMetrics creates an empty metrics set for one run
func NewMetrics() *Metrics {
	set := metrics.NewSet()
	registry := gometrics.NewRegistry()

	m := &Metrics{
		set:            set,
		iterations:     set.NewCounter("echoprobe_iterations_total"),
		lookups:        set.NewCounter("echoprobe_lookups_total"),
		lookupFailures: set.NewCounter("echoprobe_lookup_failures_total"),
		lookupDuration: set.NewHistogram("echoprobe_lookup_duration_seconds"),
		echoCalls:      set.NewCounter("echoprobe_echo_calls_total"),
		echoFailures:   set.NewCounter("echoprobe_echo_failures_total"),
		mismatches:     set.NewCounter("echoprobe_echo_mismatches_total"),
		echoDuration:   make(map[PayloadKind]*metrics.Histogram),
		registry:       registry,
		timers:         make(map[PayloadKind]gometrics.Timer),
	}

	for _, kind := range []PayloadKind{PayloadShort, PayloadLarge} {
		m.echoDuration[kind] = set.NewHistogram(fmt.Sprintf(`echoprobe_echo_duration_seconds{payload=%q}`, kind))
		m.timers[kind] = gometrics.GetOrRegisterTimer("echo."+string(kind), registry)
	}

	return m
}

// Iterations returns the number of started iterations
func (m *Metrics) Iterations() uint64 {
	if m == nil {
		return 0
	}
	return m.iterations.Get()
}

// Lookups returns the number of lookups and how many of them failed
func (m *Metrics) Lookups() (total, failed uint64) {
	if m == nil {
		return 0, 0
	}
	return m.lookups.Get(), m.lookupFailures.Get()
}

// EchoCalls returns the number of echo calls and how many of them failed or mismatched
func (m *Metrics) EchoCalls() (total, failed, mismatched uint64) {
	if m == nil {
		return 0, 0, 0
	}
	return m.echoCalls.Get(), m.echoFailures.Get(), m.mismatches.Get()
}

// WritePrometheus writes all counters and histograms in Prometheus text format
func (m *Metrics) WritePrometheus(w io.Writer) {
	if m == nil {
		return
	}
	m.set.WritePrometheus(w)
}

// PrintSummary writes one latency line per payload kind
func (m *Metrics) PrintSummary(w io.Writer) {
	if m == nil {
		return
	}

	fmt.Fprintf(w, "%-8s%8s%14s%14s%14s%14s%14s\n", "payload", "calls", "mean", "p50", "p95", "p99", "max")
	for _, kind := range []PayloadKind{PayloadShort, PayloadLarge} {
		t := m.timers[kind]
		if t.Count() == 0 {
			fmt.Fprintf(w, "%-8s%8d\n", kind, 0)
			continue
		}
		ps := t.Percentiles(summaryPercentiles)
		fmt.Fprintf(w, "%-8s%8d%14s%14s%14s%14s%14s\n",
			kind, t.Count(),
			roundDuration(t.Mean()),
			roundDuration(ps[0]), roundDuration(ps[1]), roundDuration(ps[2]),
			roundDuration(float64(t.Max())))
	}
}

// Stop releases the timers
func (m *Metrics) Stop() {
	if m == nil {
		return
	}
	for _, t := range m.timers {
		t.Stop()
	}
	m.registry.UnregisterAll()
}

// --------------------------------------------------------------------------
// Recording (called by Run)
// --------------------------------------------------------------------------

func (m *Metrics) iteration() {
	if m == nil {
		return
	}
	m.iterations.Inc()
}

func (m *Metrics) lookup(start time.Time, err error) {
	if m == nil {
		return
	}
	m.lookups.Inc()
	m.lookupDuration.UpdateDuration(start)
	if err != nil {
		m.lookupFailures.Inc()
	}
}

func (m *Metrics) echo(kind PayloadKind, start time.Time, err error) {
	if m == nil {
		return
	}
	m.echoCalls.Inc()
	m.echoDuration[kind].UpdateDuration(start)
	m.timers[kind].UpdateSince(start)
	if err != nil {
		m.echoFailures.Inc()
	}
}

func (m *Metrics) mismatch() {
	if m == nil {
		return
	}
	m.mismatches.Inc()
}

func roundDuration(ns float64) time.Duration {
	return time.Duration(ns).Round(time.Microsecond)
}
