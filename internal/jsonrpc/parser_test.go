package jsonrpc

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/tkingovr/mcp-probe/api"
)

func TestParse_ValidRequest(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`)
	msg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Method != "initialize" {
		t.Errorf("expected method initialize, got %q", msg.Method)
	}
	if !msg.IsRequest() {
		t.Error("expected IsRequest() to be true for id 0")
	}
	if msg.IsNotification() {
		t.Error("expected IsNotification() to be false")
	}
}

func TestParse_Notification(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	msg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !msg.IsNotification() {
		t.Error("expected IsNotification() to be true")
	}
}

func TestParse_Response(t *testing.T) {
	data := []byte(`{"jsonrpc":"2.0","id":0,"result":{"protocolVersion":"2025-06-18"}}`)
	msg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !msg.IsResponse() {
		t.Error("expected IsResponse() to be true")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParse_WrongVersion(t *testing.T) {
	if _, err := Parse([]byte(`{"jsonrpc":"1.0","id":1,"method":"test"}`)); err == nil {
		t.Fatal("expected error for wrong version")
	}
}

func TestNewInitializeRequest_Payload(t *testing.T) {
	msg, err := NewInitializeRequest("2025-06-18", api.ClientInfo{Name: "test-client", Version: "1.0.0"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	expected := `{
		"jsonrpc": "2.0",
		"id": 0,
		"method": "initialize",
		"params": {
			"protocolVersion": "2025-06-18",
			"capabilities": {"roots": {}},
			"clientInfo": {"name": "test-client", "version": "1.0.0"}
		}
	}`
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload mismatch:\n got: %s\nwant: %s", data, expected)
	}
}

func TestExtractInitialize(t *testing.T) {
	msg, err := NewInitializeRequest("2025-06-18", api.ClientInfo{Name: "probe", Version: "0.1.0"})
	if err != nil {
		t.Fatal(err)
	}
	params, err := ExtractInitialize(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.ProtocolVersion != "2025-06-18" {
		t.Errorf("expected protocol 2025-06-18, got %q", params.ProtocolVersion)
	}
	if params.ClientInfo.Name != "probe" {
		t.Errorf("expected client name probe, got %q", params.ClientInfo.Name)
	}
	if _, ok := params.Capabilities["roots"]; !ok {
		t.Error("expected roots capability")
	}
}

func TestExtractInitialize_WrongMethod(t *testing.T) {
	msg, _ := Parse([]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	if _, err := ExtractInitialize(msg); err == nil {
		t.Fatal("expected error for non-initialize method")
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(json.RawMessage(`1`), ErrorCodeMethodNotFound, "method not found: ping")
	data, err := Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	errObj, ok := msg["error"].(map[string]any)
	if !ok {
		t.Fatal("expected error field in response")
	}
	if int(errObj["code"].(float64)) != ErrorCodeMethodNotFound {
		t.Errorf("expected error code %d, got %v", ErrorCodeMethodNotFound, errObj["code"])
	}
}
