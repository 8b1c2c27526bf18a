package probe

import (
	"errors"
	"fmt"
)

// ErrEchoMismatch is matched by every *MismatchError
var ErrEchoMismatch = errors.New("echoed message differs from the sent message")

// PayloadKind names the message sent in an echo call
type PayloadKind string

const (
	PayloadShort PayloadKind = "short"
	PayloadLarge PayloadKind = "large"
)

// MismatchError is returned when the echo component answered with a different message
type MismatchError struct {
	Iteration      int
	Payload        PayloadKind
	SentLength     int
	ReceivedLength int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("iteration %d: %s echo mismatch: sent %d chars, received %d chars",
		e.Iteration, e.Payload, e.SentLength, e.ReceivedLength)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrEchoMismatch
}
