// Package probe implements the verification loop of echoprobe.
//
// Each iteration of Run selects the endpoint from the SSL flag, clears the
// session the transport holds for it, looks up the echo component, pins strong
// affinity to the endpoint and echoes a short and a large message. Any failure
// ends the run; a changed echo is reported as *MismatchError.
//
// Progress is written to Environment.Out for the operator, diagnostics go to the
// "probe" logger. Metrics are optional and collected only when Environment.Metrics
// is set.
package probe
