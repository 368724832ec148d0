package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"

	filters "github.com/ironsheep/image-filter-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_filter_mean").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall runs one tool and wraps its JSON result in MCP's content
// format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool failures, including rejected kernel sizes and thresholds, come back as
// error code -32000 with the Go error string as data.
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return fail(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return fail(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return reply(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	}
	if op, ok := operationForTool(name); ok {
		return s.handleFilter(op, args)
	}
	return nil, fmt.Errorf("unknown tool: %s", name)
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === File Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return filters.LoadImageInfo(s.cache, a.Path)
}

type imageSaveArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// SaveResult reports where an image was written.
type SaveResult struct {
	OutputPath string `json:"output_path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.save(img, a.OutputPath); err != nil {
		return nil, err
	}
	return &SaveResult{OutputPath: a.OutputPath, Width: img.Width(), Height: img.Height()}, nil
}

// save writes img to path and drops any cached copy of path, so the next
// load sees the new file.
func (s *Server) save(img *filters.Image, path string) error {
	if err := s.cache.Loader().Save(img, path); err != nil {
		return err
	}
	s.cache.Evict(path)
	return nil
}

// === Filter Handlers ===

type filterArgs struct {
	Path       string `json:"path"`
	KernelSize *int   `json:"kernel_size"`
	Threshold  int    `json:"threshold"`
	OutputPath string `json:"output_path"`
}

// FilterResult describes the output of a filter or edge detection tool.
//
// Exactly one of OutputPath and ImageBase64 is set.
type FilterResult struct {
	Operation   string `json:"operation"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channels    int    `json:"channels"`
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handleFilter(op string, args json.RawMessage) (interface{}, error) {
	var a filterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kernelSize := 3
	if a.KernelSize != nil {
		kernelSize = *a.KernelSize
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := filters.Apply(img, op, kernelSize, a.Threshold)
	if err != nil {
		return nil, err
	}

	result := &FilterResult{
		Operation: op,
		Width:     out.Width(),
		Height:    out.Height(),
		Channels:  out.Channels(),
	}
	if a.OutputPath != "" {
		if err := s.save(out, a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
		return result, nil
	}

	var buf bytes.Buffer
	if err := filters.EncodeImage(&buf, out, imaging.PNG, 0); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	result.MimeType = "image/png"
	return result, nil
}
