package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var sessionIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "Session id returned by image_open",
}

// sessionSchema builds an input schema that requires session_id plus the
// given extra required properties.
func sessionSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{"session_id": sessionIDProperty}
	for k, v := range props {
		all[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   append([]string{"session_id"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session Lifecycle
		{
			Name:        "image_open",
			Description: "Open an image file for editing. Returns a session id used by every edit, history and inspection tool, plus the image dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_current",
			Description: "Return the session's current image as base64-encoded PNG.",
			InputSchema: sessionSchema(nil),
		},
		{
			Name:        "image_save",
			Description: "Write the session's current image to disk. The format follows the file extension (.png, .jpg, .gif, .bmp, .tif). Without a path the image overwrites the file it was opened from.",
			InputSchema: sessionSchema(map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Optional destination path. Defaults to the opened file",
				},
			}),
		},
		{
			Name:        "image_close",
			Description: "Close a session and discard its edit history.",
			InputSchema: sessionSchema(nil),
		},

		// Edits
		{
			Name:        "image_brightness",
			Description: "Add a constant offset to the red, green and blue channels. Alpha is unchanged and results are clamped. Undoable.",
			InputSchema: sessionSchema(map[string]interface{}{
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Offset in 8-bit steps, -100 to 100",
					"minimum":     -100,
					"maximum":     100,
				},
			}, "offset"),
		},
		{
			Name:        "image_contrast",
			Description: "Scale each color channel's distance from mid-gray. Undoable.",
			InputSchema: sessionSchema(map[string]interface{}{
				"factor": map[string]interface{}{
					"type":        "number",
					"description": "Contrast factor, 0.5 to 2.0. 1.0 leaves the image unchanged",
					"minimum":     0.5,
					"maximum":     2.0,
				},
			}, "factor"),
		},
		{
			Name:        "image_grayscale",
			Description: "Replace each pixel's color with the plain average of its red, green and blue channels. Undoable.",
			InputSchema: sessionSchema(nil),
		},
		{
			Name:        "image_rotate",
			Description: "Rotate the image 90 degrees clockwise. Width and height are swapped. Undoable.",
			InputSchema: sessionSchema(nil),
		},
		{
			Name:        "image_add_border",
			Description: "Surround the image with a solid opaque frame. Each dimension grows by twice the border width. Undoable.",
			InputSchema: sessionSchema(map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Border width in pixels. Default from configuration (20)",
				},
				"color": map[string]interface{}{
					"type":        "string",
					"description": "Border color as hex (#RRGGBB). Default from configuration (black)",
				},
			}),
		},
		{
			Name:        "image_crop",
			Description: "Keep only the given rectangle. Rectangles that do not fit inside the image are rejected, never clamped. Use image_grid_overlay to pick coordinates. Undoable.",
			InputSchema: sessionSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Left edge X coordinate (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Top edge Y coordinate (0-based)",
				},
				"w": map[string]interface{}{
					"type":        "integer",
					"description": "Width in pixels",
				},
				"h": map[string]interface{}{
					"type":        "integer",
					"description": "Height in pixels",
				},
			}, "x", "y", "w", "h"),
		},

		// History
		{
			Name:        "image_undo",
			Description: "Restore the image as it was before the last edit. Does nothing (changed=false) when there is nothing to undo.",
			InputSchema: sessionSchema(nil),
		},
		{
			Name:        "image_redo",
			Description: "Re-apply the last undone edit. Does nothing (changed=false) when there is nothing to redo. Any new edit clears the redo history.",
			InputSchema: sessionSchema(nil),
		},

		// Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel of the current image. Returns hex, RGBA, HSL and the normalized sample.",
			InputSchema: sessionSchema(map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (0-based, from left)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (0-based, from top)",
				},
			}, "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several pixels of the current image in one call. Useful for comparing regions before and after an edit.",
			InputSchema: sessionSchema(map[string]interface{}{
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     map[string]interface{}{"type": "integer"},
							"y":     map[string]interface{}{"type": "integer"},
							"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
						},
						"required": []string{"x", "y"},
					},
				},
			}, "points"),
		},
		{
			Name:        "image_grid_overlay",
			Description: "Preview the current image with a coordinate grid drawn over it. The preview is not added to the edit history.",
			InputSchema: sessionSchema(map[string]interface{}{
				"grid_spacing": map[string]interface{}{
					"type":        "integer",
					"description": "Pixels between grid lines. Default 50",
					"default":     50,
				},
				"show_coordinates": map[string]interface{}{
					"type":        "boolean",
					"description": "Label grid lines with pixel coordinates. Default false",
					"default":     false,
				},
				"grid_color": map[string]interface{}{
					"type":        "string",
					"description": "Grid line color as hex (#RRGGBBAA). Default #FF000080",
					"default":     "#FF000080",
				},
			}),
		},

		// Mosaic
		{
			Name:        "mosaic_create",
			Description: "Lay the given images out as square tiles inside a heart or star outline. Tiles repeat in order until the shape is filled. Returns the mosaic as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of the source images, in tile order",
					},
					"shape": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"heart", "star"},
						"description": "Outline to fill. Picked at random when omitted",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the mosaic to",
					},
				},
				"required": []string{"paths"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
