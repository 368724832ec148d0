package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-filter-mcp/internal/imaging"
)

// Version is reported in the initialize handshake.
var Version = "dev"

const (
	protocolVersion = "2024-11-05"

	// maxRequestBytes bounds a single request line. Tool arguments are paths
	// and small integers; images never travel inbound.
	maxRequestBytes = 1 << 20
)

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Request is one JSON-RPC 2.0 request or notification. Notifications carry no ID.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is one JSON-RPC 2.0 response. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError is the error member of a Response.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// methodFunc answers one JSON-RPC method. A nil Response means nothing is
// written back, as for notifications.
type methodFunc func(s *Server, req *Request) *Response

var methods = map[string]methodFunc{
	"initialize":                (*Server).handleInitialize,
	"notifications/initialized": func(*Server, *Request) *Response { return nil },
	"tools/list":                (*Server).handleToolsList,
	"tools/call":                (*Server).handleToolsCall,
	"ping": func(_ *Server, req *Request) *Response {
		return reply(req.ID, map[string]interface{}{})
	},
}

// Server answers MCP requests against a shared cache of loaded inputs.
type Server struct {
	cache *imaging.ImageCache
}

// New creates a server. A nil loader uses imaging.NewLoader().
func New(loader *imaging.Loader) *Server {
	return &Server{
		cache: imaging.NewImageCache(loader),
	}
}

// Run serves MCP on stdin/stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w until r is exhausted. Blank and malformed lines are logged
// and skipped.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *Request) *Response {
	method, ok := methods[req.Method]
	if !ok {
		return fail(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
	return method(s, req)
}

func (s *Server) handleInitialize(req *Request) *Response {
	return reply(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "image-filter-mcp",
			"version": Version,
		},
	})
}

func reply(id interface{}, result interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// fail builds an error response; an empty data is omitted.
func fail(id interface{}, code int, message, data string) *Response {
	e := &RPCError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &Response{JSONRPC: "2.0", ID: id, Error: e}
}
