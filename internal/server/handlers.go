package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-transform/internal/config"
	"github.com/ironsheep/image-transform/internal/primitive"
	"github.com/ironsheep/image-transform/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_formats":
		return s.handleImageFormats(args)

	case "image_open":
		return s.handleImageOpen(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_release":
		return s.handleImageRelease(args)

	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_smart_crop":
		return s.handleImageSmartCrop(args)

	case "image_round":
		return s.handleImageRound(args)
	case "image_blur":
		return s.handleImageBlur(args)
	case "image_set_background":
		return s.handleImageSetBackground(args)

	case "image_encode":
		return s.handleImageEncode(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageInfo describes an open image.
type ImageInfo struct {
	Handle         string `json:"handle"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Bands          int    `json:"bands"`
	Interpretation string `json:"interpretation"`
	BandFormat     string `json:"band_format"`
	HasAlpha       bool   `json:"has_alpha"`
	Background     string `json:"background"`
	Strip          bool   `json:"strip"`
	Interlace      bool   `json:"interlace"`
}

func describe(handle string, img *transform.Image) *ImageInfo {
	bg := img.Background()
	return &ImageInfo{
		Handle:         handle,
		Width:          img.Width(),
		Height:         img.Height(),
		Bands:          img.Bands(),
		Interpretation: img.Interpretation().String(),
		BandFormat:     img.Format().String(),
		HasAlpha:       img.HasAlpha(),
		Background:     hexColour(bg.R, bg.G, bg.B),
		Strip:          bg.Strip,
		Interlace:      bg.Interlace,
	}
}

func hexColour(r, g, b uint8) string {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

type handleArgs struct {
	Handle string `json:"handle"`
}

// image looks up an open image by handle.
func (s *Server) image(handle string) (*transform.Image, error) {
	if handle == "" {
		return nil, errors.New("handle is required")
	}
	return s.images.Get(handle)
}

// === Library State Handlers ===

func (s *Server) handleImageFormats(args json.RawMessage) (interface{}, error) {
	return map[string]interface{}{
		"backend": s.ctx.Backend().Name(),
		"formats": s.ctx.Formats(),
	}, nil
}

// === Handle Handlers ===

type imageOpenArgs struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

func (s *Server) handleImageOpen(args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var buf []byte
	switch {
	case a.Path != "" && a.Data != "":
		return nil, errors.New("give either path or data, not both")
	case a.Path != "":
		b, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		buf = b
	case a.Data != "":
		b, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data: %w", err)
		}
		buf = b
	default:
		return nil, errors.New("path or data is required")
	}

	img, err := s.ctx.Decode(buf)
	if err != nil {
		return nil, err
	}
	return describe(s.images.Add(img), img), nil
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a handleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

func (s *Server) handleImageRelease(args json.RawMessage) (interface{}, error) {
	var a handleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.images.Release(a.Handle); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"handle":   a.Handle,
		"released": true,
	}, nil
}

// === Geometry Handlers ===

type imageResizeArgs struct {
	Handle string `json:"handle"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mode   string `json:"mode"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "fit"
	}
	mode, err := transform.ParseResizeMode(a.Mode)
	if err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	if err := img.Resize(a.Width, a.Height, mode); err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

type imageCropArgs struct {
	Handle  string `json:"handle"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Gravity string `json:"gravity"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Gravity == "" {
		a.Gravity = "centre"
	}
	gravity, err := transform.ParseGravity(a.Gravity)
	if err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	if err := img.Crop(a.Width, a.Height, gravity); err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

func (s *Server) handleImageSmartCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	if err := img.SmartCrop(a.Width, a.Height); err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

// === Compositing Handlers ===

type imageRoundArgs struct {
	Handle string `json:"handle"`
	RX     int    `json:"rx"`
	RY     int    `json:"ry"`
}

func (s *Server) handleImageRound(args json.RawMessage) (interface{}, error) {
	var a imageRoundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	if err := img.Round(a.RX, a.RY); err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

type imageBlurArgs struct {
	Handle string  `json:"handle"`
	Sigma  float64 `json:"sigma"`
}

func (s *Server) handleImageBlur(args json.RawMessage) (interface{}, error) {
	var a imageBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}
	if err := img.Blur(a.Sigma); err != nil {
		return nil, err
	}
	return describe(a.Handle, img), nil
}

type imageSetBackgroundArgs struct {
	Handle    string `json:"handle"`
	R         *int   `json:"r"`
	G         *int   `json:"g"`
	B         *int   `json:"b"`
	Colour    string `json:"colour"`
	Strip     *bool  `json:"strip"`
	Interlace *bool  `json:"interlace"`
}

func (s *Server) handleImageSetBackground(args json.RawMessage) (interface{}, error) {
	var a imageSetBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}

	rgb := a.R != nil || a.G != nil || a.B != nil
	switch {
	case rgb && a.Colour != "":
		return nil, errors.New("give either r/g/b or colour, not both")
	case rgb:
		if a.R == nil || a.G == nil || a.B == nil {
			return nil, errors.New("r, g and b must all be given")
		}
		if err := img.SetBackgroundColour(*a.R, *a.G, *a.B); err != nil {
			return nil, err
		}
	case a.Colour != "":
		r, g, b, err := config.ParseColour(a.Colour)
		if err != nil {
			return nil, err
		}
		if err := img.SetBackgroundColour(int(r), int(g), int(b)); err != nil {
			return nil, err
		}
	}

	bg := img.Background()
	if a.Strip != nil {
		bg.Strip = *a.Strip
	}
	if a.Interlace != nil {
		bg.Interlace = *a.Interlace
	}
	img.SetBackground(bg)

	return describe(a.Handle, img), nil
}

// === Output Handlers ===

// EncodeResult is returned by image_encode.
type EncodeResult struct {
	Handle      string `json:"handle"`
	Format      string `json:"format"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

type imageEncodeArgs struct {
	Handle     string `json:"handle"`
	Format     string `json:"format"`
	Quality    int    `json:"quality"`
	Strip      *bool  `json:"strip"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageEncode(args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = ".png"
	}
	img, err := s.image(a.Handle)
	if err != nil {
		return nil, err
	}

	strip := img.Background().Strip
	if a.Strip != nil {
		strip = *a.Strip
	}
	buf, err := img.ToBuffer(a.Format, a.Quality, strip)
	if err != nil {
		return nil, err
	}

	format := primitive.DetectFormat(buf)
	result := &EncodeResult{
		Handle:    a.Handle,
		Format:    string(format),
		MimeType:  mimeType(format),
		SizeBytes: len(buf),
	}
	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, buf, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
		result.OutputPath = a.OutputPath
		return result, nil
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(buf)
	return result, nil
}

func mimeType(f primitive.FileFormat) string {
	if f == primitive.FileFormatUnknown {
		return "application/octet-stream"
	}
	return "image/" + string(f)
}
