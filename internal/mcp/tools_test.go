package mcp

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{"image_load", "steg_capacity", "steg_encode", "steg_decode", "steg_compare"}
	if len(tools) != len(want) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(want))
	}

	seen := make(map[string]bool)
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tool %d: got %s, want %s", i, tool.Name, want[i])
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: missing description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type: got %v, want object", tool.Name, tool.InputSchema["type"])
		}
	}
}

func TestGetToolDefinitions_RequiredPropertiesExist(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s: properties should be a map", tool.Name)
		}
		required, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Fatalf("%s: required should be a []string", tool.Name)
		}
		for _, name := range required {
			if _, ok := props[name]; !ok {
				t.Errorf("%s: required property %q not defined", tool.Name, name)
			}
		}
	}
}

func TestGetToolDefinitions_StrategyEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		prop, ok := props["strategy"].(map[string]interface{})
		if !ok {
			continue
		}
		enum, ok := prop["enum"].([]string)
		if !ok || len(enum) != 3 {
			t.Errorf("%s: strategy enum: got %v", tool.Name, prop["enum"])
		}
		if prop["default"] != "bit" {
			t.Errorf("%s: strategy default: got %v, want bit", tool.Name, prop["default"])
		}
	}
}

func TestGetToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tools: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("%v: inputSchema key missing", tool["name"])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != 5 {
		t.Errorf("Expected 5 tools, got %d", len(toolsList))
	}
}
