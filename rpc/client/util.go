package client

import (
	"fmt"
	"net/url"

	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	"github.com/ValentinKolb/echoprobe/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// RemoteError is returned when the server answered with an error message
type RemoteError struct {
	MsgType common.MessageType
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s failed: %s", e.MsgType, e.Message)
}

// Invoke is the helper used by all RPC clients to send requests.
// It serializes req, sends it to path below target and deserializes the answer.
// An error response is returned as *RemoteError, a response of another type than
// the request is an error as well.
func Invoke(
	target *url.URL,
	path string,
	req *common.Message,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, fmt.Errorf("RPC client - failed to serialize %s request: %w", req.MsgType, err)
	}

	// Send the request
	respBytes, err := transport.Send(target, path, reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	if err := serializer.Deserialize(respBytes, resp); err != nil {
		return nil, fmt.Errorf("RPC client - failed to deserialize response: %w", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, &RemoteError{MsgType: req.MsgType, Message: resp.Err}
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC client - unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	return resp, nil
}
