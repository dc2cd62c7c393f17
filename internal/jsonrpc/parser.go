package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/tkingovr/mcp-probe/api"
)

// Parse decodes a raw JSON byte slice into a JSONRPCMessage.
func Parse(data []byte) (*api.JSONRPCMessage, error) {
	var msg api.JSONRPCMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC message: %w", err)
	}
	if msg.JSONRPC != Version {
		return nil, fmt.Errorf("unsupported JSON-RPC version: %q", msg.JSONRPC)
	}
	return &msg, nil
}

// ExtractInitialize decodes the params of an initialize request.
func ExtractInitialize(msg *api.JSONRPCMessage) (*api.InitializeParams, error) {
	if msg.Method != MethodInitialize {
		return nil, fmt.Errorf("not an initialize request: %q", msg.Method)
	}
	if msg.Params == nil {
		return nil, fmt.Errorf("initialize request has no params")
	}
	var params api.InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil, fmt.Errorf("failed to parse initialize params: %w", err)
	}
	return &params, nil
}
