package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func rectSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "number"},
			"y": map[string]interface{}{"type": "number"},
			"w": map[string]interface{}{"type": "number"},
			"h": map[string]interface{}{"type": "number"},
		},
		"required": []string{"x", "y", "w", "h"},
	}
}

func modeProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"string", "integer"},
		"description": description + ` One of "greyscale" (1), "blur" (2), "hue" (3), "pixelate" (4).`,
	}
}

// thresholdProperties returns the slider parameters shared by image_transform
// and image_panels, merged into extra.
func thresholdProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"r": map[string]interface{}{
			"type":        "integer",
			"description": "Red threshold 0-255. Default 128",
			"default":     128,
		},
		"g": map[string]interface{}{
			"type":        "integer",
			"description": "Green threshold 0-255. Default 128",
			"default":     128,
		},
		"b": map[string]interface{}{
			"type":        "integer",
			"description": "Blue threshold 0-255. Default 128",
			"default":     128,
		},
		"hue_center": map[string]interface{}{
			"type":        "number",
			"description": "Centre of the hue band in degrees 0-360. Default 0 (red)",
			"default":     0,
		},
		"cr": map[string]interface{}{
			"type":        "integer",
			"description": "Cr (red-difference chroma) threshold 0-255. Default 128",
			"default":     128,
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source files
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_snapshot",
			Description: "Freeze an image file at the working resolution (160x120 by default) and make it the current snapshot. Clears the face region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the source frame"),
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the snapshot as base64 PNG. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Face region state
		{
			Name:        "image_set_face_region",
			Description: "Set the face rectangle used for compositing. Give x/y/w/h, or a list of detector candidates (the largest is kept), or clear=true to remove it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "number", "description": "Left edge in snapshot pixels"},
					"y": map[string]interface{}{"type": "number", "description": "Top edge in snapshot pixels"},
					"w": map[string]interface{}{"type": "number", "description": "Width in pixels"},
					"h": map[string]interface{}{"type": "number", "description": "Height in pixels"},
					"candidates": map[string]interface{}{
						"type":        "array",
						"description": "Detected face rectangles; the one with the largest area is kept",
						"items":       rectSchema("Detected face"),
					},
					"clear": map[string]interface{}{
						"type":        "boolean",
						"description": "Remove the current face region",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_set_face_mode",
			Description: "Select the privacy filter applied inside the face region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": modeProperty("Filter mode by name or key code."),
				},
				"required": []string{"mode"},
			},
		},

		// Pipeline
		{
			Name:        "image_transform",
			Description: "Run one transform over the current snapshot and return the result as base64 PNG. Channel transforms return r, g and b images.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": thresholdProperties(map[string]interface{}{
					"transform": map[string]interface{}{
						"type":        "string",
						"description": "Transform to run",
						"enum":        transformNames,
					},
					"half_width": map[string]interface{}{
						"type":        "number",
						"description": "Hue band half-width in degrees (hue_band only). Default 20",
						"default":     20,
					},
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Box blur radius (blur only), at most the snapshot's longer side. Default 6",
						"default":     6,
					},
					"block_size": map[string]interface{}{
						"type":        "integer",
						"description": "Block edge in pixels (pixelate only), at most the snapshot's longer side. Default 5",
						"default":     5,
					},
				}),
				"required": []string{"transform"},
			},
		},
		{
			Name:        "image_replace_face",
			Description: "Replace the face region of the current snapshot with the selected privacy filter. Returns replaced=false when no face region is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rect": rectSchema("Face rectangle. Defaults to the stored face region"),
					"mode": modeProperty("Filter mode. Defaults to the stored mode."),
				},
			},
		},
		{
			Name:        "image_panels",
			Description: "Render every view of the current snapshot (channels, thresholds, hue, luma, Cr mask, face) and optionally a 3x5 contact sheet.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": thresholdProperties(map[string]interface{}{
					"sheet": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the contact sheet. Default false",
						"default":     false,
					},
					"sheet_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Return only the contact sheet. Default false",
						"default":     false,
					},
				}),
			},
		},

		// Inspection and output
		{
			Name:        "image_sample_color",
			Description: "Get the color of a pixel as hex, RGBA, HSV and YCbCr. Samples the current snapshot unless a path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Optional image file to sample instead of the snapshot"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_save",
			Description: "Save the current snapshot as PNG. With face=true the face-replaced composite is saved instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Output path; .png is appended when there is no extension"),
					"face": map[string]interface{}{
						"type":        "boolean",
						"description": "Save the snapshot after face replacement. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
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
