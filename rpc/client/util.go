package client

import (
	"fmt"

	"github.com/ValentinKolb/ipfinder/rpc/common"
	"github.com/ValentinKolb/ipfinder/rpc/serializer"
	"github.com/ValentinKolb/ipfinder/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
// Used by the RPC registry with composition pattern
type rpcClientAdapter struct {
	networkId  uint64
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest is a helper function used for all RPC Clients to send requests
// It takes a network ID, a request message, a transport layer and a serializer as parameters
// It returns a response message and an error if any occurs
// This method also checks if the response is an error response and if the type of the response is the expected type
func invokeRPCRequest(networkId uint64, req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, fmt.Errorf("RPC %s - failed to serialize request: %w", req.MsgType, err)
	}

	respBytes, err := transport.Send(networkId, reqBytes)
	if err != nil {
		return nil, fmt.Errorf("RPC %s - transport error: %w", req.MsgType, err)
	}

	resp := &common.Message{}
	if err = serializer.Deserialize(respBytes, resp); err != nil {
		return nil, fmt.Errorf("RPC %s - failed to deserialize response: %w", req.MsgType, err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("RPC %s - Error: %s", req.MsgType, resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC %s - Unexpected message type: %s", req.MsgType, resp.MsgType)
	}

	return resp, nil
}
