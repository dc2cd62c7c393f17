package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/tkingovr/mcp-probe/api"
)

const (
	// Version is the JSON-RPC protocol version string.
	Version = "2.0"

	// MethodInitialize is the MCP handshake method.
	MethodInitialize = "initialize"
)

// ErrorCodeMethodNotFound is the standard JSON-RPC error code for unknown methods.
const ErrorCodeMethodNotFound = -32601

// ErrorCodeParse is the standard JSON-RPC error code for unparseable requests.
const ErrorCodeParse = -32700

// InitializeID is the request ID used for the initialize probe.
var InitializeID = json.RawMessage(`0`)

// NewInitializeRequest creates the initialize request sent by the probe.
// Capabilities always advertise an empty roots entry.
func NewInitializeRequest(protocolVersion string, client api.ClientInfo) (*api.JSONRPCMessage, error) {
	params, err := json.Marshal(api.InitializeParams{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]any{"roots": map[string]any{}},
		ClientInfo:      client,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding initialize params: %w", err)
	}
	return &api.JSONRPCMessage{
		JSONRPC: Version,
		ID:      InitializeID,
		Method:  MethodInitialize,
		Params:  params,
	}, nil
}

// NewResult creates a JSON-RPC success response.
func NewResult(id json.RawMessage, result any) (*api.JSONRPCMessage, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &api.JSONRPCMessage{
		JSONRPC: Version,
		ID:      id,
		Result:  data,
	}, nil
}

// NewErrorResponse creates a JSON-RPC error response.
func NewErrorResponse(id json.RawMessage, code int, message string) *api.JSONRPCMessage {
	return &api.JSONRPCMessage{
		JSONRPC: Version,
		ID:      id,
		Error: &api.JSONRPCError{
			Code:    code,
			Message: message,
		},
	}
}

// Marshal encodes a JSONRPCMessage to JSON bytes.
func Marshal(msg *api.JSONRPCMessage) ([]byte, error) {
	return json.Marshal(msg)
}
