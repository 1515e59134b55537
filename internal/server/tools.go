package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func property(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func handleProperty() map[string]interface{} {
	return property("string", "Image handle returned by image_open")
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Library state
		{
			Name:        "image_formats",
			Description: "List the file extensions the image backend can decode and encode.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Handles
		{
			Name:        "image_open",
			Description: "Decode an image from a file path or base64 data and return a handle for subsequent operations. Exactly one of path or data must be given.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": property("string", "Absolute path to the image file"),
				"data": property("string", "Base64-encoded image bytes"),
			}),
		},
		{
			Name:        "image_info",
			Description: "Get the current dimensions, band count, interpretation and background of an open image.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
			}, "handle"),
		},
		{
			Name:        "image_release",
			Description: "Release an open image. The handle is invalid afterwards.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
			}, "handle"),
		},

		// Geometry
		{
			Name:        "image_resize",
			Description: "Resize an image. fit scales to fit inside width x height, fill fits and pads to exactly width x height, crop scales to cover and centre-crops. A zero dimension is derived from the aspect ratio.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"width":  property("integer", "Target width in pixels (0 = derive)"),
				"height": property("integer", "Target height in pixels (0 = derive)"),
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"fit", "fill", "crop"},
					"description": "Resize mode. Default fit",
					"default":     "fit",
				},
			}, "handle"),
		},
		{
			Name:        "image_crop",
			Description: "Crop an image to width x height anchored by gravity. Targets larger than the image are clamped and zero keeps the current dimension.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"width":  property("integer", "Target width in pixels (0 = keep)"),
				"height": property("integer", "Target height in pixels (0 = keep)"),
				"gravity": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest", "centre", "smart"},
					"description": "Anchor for the kept region. smart keeps the most detailed region. Default centre",
					"default":     "centre",
				},
			}, "handle"),
		},
		{
			Name:        "image_smart_crop",
			Description: "Crop an image to width x height by repeatedly trimming the lower-entropy edge. The target must not exceed the image.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"width":  property("integer", "Target width in pixels"),
				"height": property("integer", "Target height in pixels"),
			}, "handle", "width", "height"),
		},

		// Compositing
		{
			Name:        "image_round",
			Description: "Make the corners of an image transparent using a rounded-rectangle mask. The result always has an alpha band.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"rx":     property("integer", "Horizontal corner radius in pixels"),
				"ry":     property("integer", "Vertical corner radius in pixels"),
			}, "handle", "rx", "ry"),
		},
		{
			Name:        "image_blur",
			Description: "Apply a Gaussian blur.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"sigma":  property("number", "Standard deviation of the Gaussian, greater than zero"),
			}, "handle", "sigma"),
		},
		{
			Name:        "image_set_background",
			Description: "Set the colour used for fill padding and for flattening alpha when encoding, given either as r/g/b or as a hex colour. Optionally change the strip and interlace output flags.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle":    handleProperty(),
				"r":         property("integer", "Red 0-255"),
				"g":         property("integer", "Green 0-255"),
				"b":         property("integer", "Blue 0-255"),
				"colour":    property("string", "Hex colour such as #ff8800, instead of r/g/b"),
				"strip":     property("boolean", "Strip metadata when encoding"),
				"interlace": property("boolean", "Write interlaced/progressive output where supported"),
			}, "handle"),
		},

		// Output
		{
			Name:        "image_encode",
			Description: "Encode an image. The result is returned as base64 unless output_path is given, in which case the file is written.",
			InputSchema: objectSchema(map[string]interface{}{
				"handle": handleProperty(),
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Output extension such as .png, .jpg or .webp. Default .png",
					"default":     ".png",
				},
				"quality":     property("integer", "JPEG quality 1-100 (0 = default 75)"),
				"strip":       property("boolean", "Strip metadata. Defaults to the image background setting"),
				"output_path": property("string", "Optional file to write instead of returning base64"),
			}, "handle"),
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
