package mcp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-steg/internal/raster"
	"github.com/ironsheep/image-steg/internal/steg"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "steg_encode").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Debug().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "steg_capacity":
		return s.handleCapacity(args)
	case "steg_encode":
		return s.handleEncode(args)
	case "steg_decode":
		return s.handleDecode(args)
	case "steg_compare":
		return s.handleCompare(args)
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

// unmarshalArgs decodes tool arguments, treating absent arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func lookupStrategy(name string) (steg.Encoder, string, error) {
	if name == "" {
		name = steg.StrategyLSB
	}
	enc, err := steg.Lookup(name)
	if err != nil {
		return nil, "", err
	}
	return enc, name, nil
}

// === Image Information ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return raster.LoadInfo(s.cache, a.Path)
}

// CapacityResult reports how many message bytes each strategy accepts.
type CapacityResult struct {
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	TransparentPixels int            `json:"transparent_pixels"`
	Capacity          map[string]int `json:"capacity"`
}

func (s *Server) handleCapacity(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	r, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result := &CapacityResult{
		Width:             r.Width,
		Height:            r.Height,
		TransparentPixels: r.TransparentPixels(),
		Capacity:          make(map[string]int),
	}
	for _, name := range steg.Strategies() {
		enc, err := steg.Lookup(name)
		if err != nil {
			return nil, err
		}
		result.Capacity[name] = enc.Capacity(r)
	}
	return result, nil
}

// === Encode / Decode ===

type encodeArgs struct {
	Path       string  `json:"path"`
	Message    *string `json:"message"`
	Strategy   string  `json:"strategy"`
	OutputPath string  `json:"output_path"`
}

// EncodeResult describes an encoded image. Exactly one of OutputPath and
// ImageBase64 is set.
type EncodeResult struct {
	Strategy      string `json:"strategy"`
	MessageLength int    `json:"message_length"`
	Capacity      int    `json:"capacity"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	OutputPath    string `json:"output_path,omitempty"`
	BytesWritten  int    `json:"bytes_written,omitempty"`
	ImageBase64   string `json:"image_base64,omitempty"`
	MimeType      string `json:"mime_type"`
}

func (s *Server) handleEncode(args json.RawMessage) (interface{}, error) {
	var a encodeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if a.Message == nil {
		return nil, errors.New("message is required")
	}

	enc, name, err := lookupStrategy(a.Strategy)
	if err != nil {
		return nil, err
	}

	r, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := enc.Encode(r, []byte(*a.Message))
	if err != nil {
		return nil, err
	}

	b, err := raster.Serialize(out, raster.WithCompression(s.compression))
	if err != nil {
		return nil, err
	}

	result := &EncodeResult{
		Strategy:      name,
		MessageLength: len(*a.Message),
		Capacity:      enc.Capacity(r),
		Width:         out.Width,
		Height:        out.Height,
		MimeType:      "image/png",
	}

	if a.OutputPath == "" {
		result.ImageBase64 = base64.StdEncoding.EncodeToString(b)
		return result, nil
	}

	if err := os.WriteFile(a.OutputPath, b, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	s.cache.Evict(a.OutputPath)

	result.OutputPath = a.OutputPath
	result.BytesWritten = len(b)
	return result, nil
}

type decodeArgs struct {
	Path     string `json:"path"`
	Strategy string `json:"strategy"`
}

// DecodeResult carries a recovered message.
type DecodeResult struct {
	Strategy string `json:"strategy"`
	Message  string `json:"message"`
	Length   int    `json:"length"`
}

func (s *Server) handleDecode(args json.RawMessage) (interface{}, error) {
	var a decodeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	enc, name, err := lookupStrategy(a.Strategy)
	if err != nil {
		return nil, err
	}

	r, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	msg, err := enc.Decode(r)
	if err != nil {
		return nil, err
	}

	return &DecodeResult{Strategy: name, Message: string(msg), Length: len(msg)}, nil
}

// === Analysis ===

type compareArgs struct {
	Path1 string `json:"path1"`
	Path2 string `json:"path2"`
}

func (s *Server) handleCompare(args json.RawMessage) (interface{}, error) {
	var a compareArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path1 == "" || a.Path2 == "" {
		return nil, errors.New("path1 and path2 are required")
	}

	r1, err := s.cache.Load(a.Path1)
	if err != nil {
		return nil, err
	}
	r2, err := s.cache.Load(a.Path2)
	if err != nil {
		return nil, err
	}
	return raster.Compare(r1, r2)
}
