package server

import (
	"strings"

	"github.com/ironsheep/image-filter-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var operationDescriptions = map[string]string{
	imaging.OpMean:      "Smooth an image with a mean (box) filter of the given kernel size.",
	imaging.OpGaussian:  "Smooth an image with a Gaussian filter of the given kernel size (sigma derived from the size).",
	imaging.OpMedian:    "Remove impulse noise with a median filter of the given window size.",
	imaging.OpSobel:     "Detect edges with the Sobel operator. Returns an RGB image of gradient magnitude.",
	imaging.OpPrewitt:   "Detect edges with the Prewitt operator. Returns an RGB image of gradient magnitude.",
	imaging.OpLaplacian: "Detect edges with the 4-neighbour Laplacian. Returns an RGB image of the clipped response.",
}

// toolName maps an imaging operation to its MCP tool name.
func toolName(op string) string {
	if imaging.IsSmoothing(op) {
		return "image_filter_" + op
	}
	return "image_edge_" + op
}

// operationForTool is the inverse of toolName.
func operationForTool(name string) (string, bool) {
	for _, prefix := range []string{"image_filter_", "image_edge_"} {
		if op, ok := strings.CutPrefix(name, prefix); ok {
			if _, known := operationDescriptions[op]; known && toolName(op) == name {
				return op, true
			}
		}
	}
	return "", false
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file or CSV matrix",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional destination file. Format follows the extension (.png, .jpg, .bmp, .tif, .gif, .csv); no extension means JPEG. When omitted the result is returned as base64 PNG.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	tools := []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file or CSV matrix and return its dimensions and format. CSV values are normalized to 0-255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_save",
			Description: "Load an image or CSV matrix and save it to another path, converting the format by extension. CSV output is grayscale integers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Destination file",
					},
				},
				"required": []string{"path", "output_path"},
			},
		},
	}

	for _, op := range imaging.Operations() {
		props := map[string]interface{}{
			"path":        pathProperty(),
			"output_path": outputPathProperty(),
		}
		if imaging.IsSmoothing(op) {
			props["kernel_size"] = map[string]interface{}{
				"type":        "integer",
				"description": "Kernel side length. Even values are increased by one. Must not exceed the image size. Default 3",
				"default":     3,
			}
		} else {
			props["threshold"] = map[string]interface{}{
				"type":        "integer",
				"description": "Suppress magnitudes below this value (0-255). 0 keeps the raw magnitude. Default 0",
				"default":     0,
			}
		}
		tools = append(tools, Tool{
			Name:        toolName(op),
			Description: operationDescriptions[op],
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": props,
				"required":   []string{"path"},
			},
		})
	}
	return tools
}

func (s *Server) handleToolsList(req *Request) *Response {
	return reply(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
