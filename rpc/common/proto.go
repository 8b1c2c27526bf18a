package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key   string `json:"key,omitempty"`   // Used for: Lookup (name), Invoke (method)
	Value []byte `json:"value,omitempty"` // Used for: Invoke (argument in the request, result in the response)

	// Response only fields
	Ok  bool   `json:"ok,omitempty"`  // Used for: Lookup responses
	Err string `json:"err,omitempty"` // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Used for: Lookup responses (canonical name), Custom
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewLookupRequest creates a new Lookup request for a name
func NewLookupRequest(name string) *Message {
	return &Message{
		MsgType: MsgTLookup,
		Key:     name,
	}
}

// NewLookupResponse creates a new Lookup response
// ok reports whether the name is bound, canonical is the name the provider resolved it to
func NewLookupResponse(canonical string, ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTLookup,
		Ok:      ok,
	}
	if canonical != "" {
		msg.Meta = []byte(canonical)
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewInvokeRequest creates a new Invoke request for a method with a single argument
func NewInvokeRequest(method string, arg []byte) *Message {
	return &Message{
		MsgType: MsgTInvoke,
		Key:     method,
		Value:   arg,
	}
}

// NewInvokeResponse creates a new Invoke response
func NewInvokeResponse(result []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTInvoke,
		Value:   result,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewCustomRequest creates a new Custom request
func NewCustomRequest(meta []byte) *Message {
	return &Message{
		MsgType: MsgTCustom,
		Meta:    meta,
	}
}

// NewCustomResponse creates a new Custom response
func NewCustomResponse(meta []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTCustom,
		Meta:    meta,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTLookup:
		return "lookup"
	case MsgTInvoke:
		return "invoke"
	case MsgTCustom:
		return "custom"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "lookup":
		*t = MsgTLookup
	case "invoke":
		*t = MsgTInvoke
	case "custom":
		*t = MsgTCustom
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Naming operations

	MsgTLookup // Resolve a name against the provider

	// Invocation operations

	MsgTInvoke // Invoke a method on a remote component

	// Custom operations

	MsgTCustom // Custom operation type
)
