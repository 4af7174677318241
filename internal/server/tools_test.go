package server

import (
	"encoding/json"
	"strings"
	"testing"
)

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_snapshot",
		"image_set_face_region",
		"image_set_face_mode",
		"image_transform",
		"image_replace_face",
		"image_panels",
		"image_sample_color",
		"image_save",
	}

	toolMap := toolsByName()
	if len(toolMap) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(toolMap), len(expectedTools))
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing 'properties' map")
			}
			for name, p := range props {
				prop, ok := p.(map[string]interface{})
				if !ok {
					t.Errorf("property %s is not a map", name)
					continue
				}
				if _, ok := prop["type"]; !ok {
					t.Errorf("property %s has no type", name)
				}
			}

			// Every required parameter must be declared.
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required parameter %s is not in properties", name)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"image_load", []string{"path"}},
		{"image_dimensions", []string{"path"}},
		{"image_snapshot", []string{"path"}},
		{"image_set_face_region", nil},
		{"image_set_face_mode", []string{"mode"}},
		{"image_transform", []string{"transform"}},
		{"image_replace_face", nil},
		{"image_panels", nil},
		{"image_sample_color", []string{"x", "y"}},
		{"image_save", []string{"path"}},
	}

	toolMap := toolsByName()
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := toolMap[tt.tool]
			if !ok {
				t.Fatalf("tool %s not found", tt.tool)
			}
			got, _ := tool.InputSchema["required"].([]string)
			if strings.Join(got, ",") != strings.Join(tt.required, ",") {
				t.Errorf("required: got %v, want %v", got, tt.required)
			}
		})
	}
}

func TestToolDefinitions_Defaults(t *testing.T) {
	tests := []struct {
		tool, param string
		want        interface{}
	}{
		{"image_transform", "r", 128},
		{"image_transform", "cr", 128},
		{"image_transform", "hue_center", 0},
		{"image_transform", "half_width", 20},
		{"image_transform", "radius", 6},
		{"image_transform", "block_size", 5},
		{"image_panels", "g", 128},
		{"image_panels", "sheet", false},
		{"image_snapshot", "include_image", false},
		{"image_save", "face", false},
	}

	toolMap := toolsByName()
	for _, tt := range tests {
		t.Run(tt.tool+"."+tt.param, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			prop, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("parameter %s not found", tt.param)
			}
			if prop["default"] != tt.want {
				t.Errorf("default: got %v, want %v", prop["default"], tt.want)
			}
		})
	}
}

func TestToolDefinitions_TransformEnum(t *testing.T) {
	props := toolsByName()["image_transform"].InputSchema["properties"].(map[string]interface{})
	transform := props["transform"].(map[string]interface{})
	enum, ok := transform["enum"].([]string)
	if !ok {
		t.Fatal("transform should list its values in enum")
	}
	if len(enum) != len(transformNames) {
		t.Errorf("enum: got %d values, want %d", len(enum), len(transformNames))
	}
}

// Every advertised tool must be routed by executeTool.
func TestToolDefinitions_AllDispatched(t *testing.T) {
	s := newTestServer()
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil && strings.HasPrefix(err.Error(), "unknown tool") {
			t.Errorf("%s is advertised but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}
	if !strings.Contains(string(data), `"inputSchema"`) {
		t.Error("tools should marshal with inputSchema key")
	}
}
