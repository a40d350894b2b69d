package mcp

import "github.com/ironsheep/image-steg/internal/steg"

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

func strategyProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{steg.StrategyLSB, steg.StrategyTransparent, steg.StrategyNone},
		"description": "bit: one bit per color channel of every pixel. alpha: three bytes per fully transparent pixel. Default bit",
		"default":     steg.StrategyLSB,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a PNG file and return its dimensions, whether it has any transparency and how many pixels are fully transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the PNG file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_capacity",
			Description: "Report the longest message, in bytes, each strategy can hide in a PNG file. -1 means not even an empty message fits.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the PNG file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_encode",
			Description: "Hide a message in a PNG file. Writes the result to output_path when given, otherwise returns it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the cover PNG file"),
					"message": map[string]interface{}{
						"type":        "string",
						"description": "Message to hide. Must not contain the byte 0xFF",
					},
					"strategy":    strategyProperty(),
					"output_path": pathProperty("Optional absolute path to write the encoded PNG to"),
				},
				"required": []string{"path", "message"},
			},
		},
		{
			Name:        "steg_decode",
			Description: "Recover a message hidden in a PNG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty("Absolute path to the encoded PNG file"),
					"strategy": strategyProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "steg_compare",
			Description: "Compare two PNG files of the same size pixel by pixel. Reports changed pixels and channels and the mean and max CIEDE2000 color difference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": pathProperty("Absolute path to the first PNG file, usually the cover"),
					"path2": pathProperty("Absolute path to the second PNG file, usually the encoded image"),
				},
				"required": []string{"path1", "path2"},
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
