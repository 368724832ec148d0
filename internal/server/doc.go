// Package server implements the MCP (Model Context Protocol) server for the
// spatial filtering tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// File handling:
//   - image_load: Load an image or CSV matrix and report its shape
//   - image_save: Re-encode a loaded file to another path/format
//
// Smoothing (take kernel_size, default 3):
//   - image_filter_mean, image_filter_gaussian, image_filter_median
//
// Edge detection (take threshold, default 0):
//   - image_edge_sobel, image_edge_prewitt, image_edge_laplacian
//
// Every filter tool accepts an optional output_path. When it is set the
// result is saved there (format chosen by extension); otherwise the result is
// returned inline as a base64 PNG.
//
// # Image Caching
//
// Loaded inputs are cached by path. Filter results are never cached, and any
// tool that writes a file evicts that path so the next load reads it again.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data.
package server
