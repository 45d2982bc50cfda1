package types

import (
	"encoding/json"
	"testing"
)

func TestTextContent_ContentType(t *testing.T) {
	tc := TextContent{Type: ContentTypeText, Text: "hello"}
	if tc.ContentType() != ContentTypeText {
		t.Errorf("ContentType() = %s, want %s", tc.ContentType(), ContentTypeText)
	}
}

func TestContentBlock_Implementations(t *testing.T) {
	var blocks = []ContentBlock{
		TextContent{Type: ContentTypeText},
		ImageContent{Type: ContentTypeImage},
		AudioContent{Type: ContentTypeAudio},
		ResourceLinkContent{Type: ContentTypeResourceLink},
		ResourceContent{Type: ContentTypeResource},
	}

	want := []string{
		ContentTypeText,
		ContentTypeImage,
		ContentTypeAudio,
		ContentTypeResourceLink,
		ContentTypeResource,
	}

	for i, b := range blocks {
		if got := b.ContentType(); got != want[i] {
			t.Errorf("blocks[%d].ContentType() = %s, want %s", i, got, want[i])
		}
	}
}

func TestClientCapabilities_MarshalOmitsAbsent(t *testing.T) {
	caps := ClientCapabilities{Tools: &ToolsCapability{}}

	data, err := json.Marshal(caps)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["prompts"]; ok {
		t.Error("expected prompts to be omitted when nil")
	}
	if _, ok := raw["resources"]; ok {
		t.Error("expected resources to be omitted when nil")
	}
	if _, ok := raw["tools"]; !ok {
		t.Error("expected tools to be present")
	}
}

func TestInitializeResult_RoundTrip(t *testing.T) {
	original := InitializeResult{
		ProtocolVersion: LatestProtocolVersion,
		ServerInfo:      Implementation{Name: "srv", Version: "1.0"},
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: true},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded InitializeResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.ServerInfo != original.ServerInfo {
		t.Errorf("ServerInfo = %+v, want %+v", decoded.ServerInfo, original.ServerInfo)
	}
	if decoded.Capabilities.Tools == nil || !decoded.Capabilities.Tools.ListChanged {
		t.Errorf("Capabilities.Tools = %+v, want ListChanged true", decoded.Capabilities.Tools)
	}
}
