// Package mcptest provides a minimal in-process MCP HTTP server for tests.
// It serves POST /mcp (JSON-RPC) and GET /mcp/sse (a single "connected"
// event, then holds the stream open).
package mcptest

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/tkingovr/mcp-probe/api"
	"github.com/tkingovr/mcp-probe/internal/jsonrpc"
)

// Server is a stand-in MCP server backed by httptest.Server.
type Server struct {
	*httptest.Server

	sseStatus  int
	mcpStatus  int
	mcpBody    string
	overridden bool

	mu       sync.Mutex
	received [][]byte
	sseHits  int

	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithSSEStatus makes GET /mcp/sse answer with status instead of streaming.
func WithSSEStatus(status int) Option {
	return func(s *Server) { s.sseStatus = status }
}

// WithMCPResponse makes POST /mcp answer every request with a fixed
// status and body.
func WithMCPResponse(status int, body string) Option {
	return func(s *Server) {
		s.mcpStatus = status
		s.mcpBody = body
		s.overridden = true
	}
}

// NewServer starts a Server. Callers must Close it.
func NewServer(opts ...Option) *Server {
	s := &Server{sseStatus: http.StatusOK, done: make(chan struct{})}
	for _, o := range opts {
		o(s)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /mcp", s.handleMCP)
	mux.HandleFunc("GET /mcp/sse", s.handleSSE)
	s.Server = httptest.NewServer(mux)
	return s
}

// Close releases any held SSE streams and shuts the server down.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.Server.Close()
}

// Host returns the listener host.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Hostname()
}

// Port returns the listener port.
func (s *Server) Port() int {
	u, _ := url.Parse(s.URL)
	p, _ := strconv.Atoi(u.Port())
	return p
}

// Received returns copies of every POST /mcp body seen so far.
func (s *Server) Received() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.received))
	for i, b := range s.received {
		out[i] = append([]byte(nil), b...)
	}
	return out
}

// SSEHits returns the number of GET /mcp/sse requests served.
func (s *Server) SSEHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sseHits
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.received = append(s.received, body)
	s.mu.Unlock()

	if s.overridden {
		w.WriteHeader(s.mcpStatus)
		io.WriteString(w, s.mcpBody)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	msg, err := jsonrpc.Parse(body)
	if err != nil {
		writeMessage(w, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParse, fmt.Sprintf("Parse error: %v", err)))
		return
	}

	switch msg.Method {
	case jsonrpc.MethodInitialize:
		params, err := jsonrpc.ExtractInitialize(msg)
		if err != nil {
			writeMessage(w, jsonrpc.NewErrorResponse(msg.ID, -32602, err.Error()))
			return
		}
		resp, err := jsonrpc.NewResult(msg.ID, map[string]any{
			"protocolVersion": params.ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
			"serverInfo":      api.ClientInfo{Name: "mcptest", Version: "1.0.0"},
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeMessage(w, resp)

	default:
		writeMessage(w, jsonrpc.NewErrorResponse(msg.ID, jsonrpc.ErrorCodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", msg.Method)))
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sseHits++
	s.mu.Unlock()

	if s.sseStatus != http.StatusOK {
		http.Error(w, http.StatusText(s.sseStatus), s.sseStatus)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "event: connected\ndata: MCP SSE connection established\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	select {
	case <-r.Context().Done():
	case <-s.done:
	}
}

func writeMessage(w http.ResponseWriter, msg *api.JSONRPCMessage) {
	data, _ := json.Marshal(msg)
	w.Write(data)
}

// ClosedPort returns a loopback port with nothing listening on it.
func ClosedPort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}
