package types

import "testing"

func TestCallToolResult_GetTextContent(t *testing.T) {
	result := CallToolResult{
		Content: []interface{}{
			map[string]interface{}{"type": "text", "text": "hello"},
			map[string]interface{}{"type": "image", "data": "Zm9v", "mimeType": "image/png"},
		},
	}

	texts := result.GetTextContent()
	if len(texts) != 1 || texts[0].Text != "hello" {
		t.Errorf("GetTextContent() = %+v, want one entry with text 'hello'", texts)
	}

	strings := result.GetTextStrings()
	if len(strings) != 1 || strings[0] != "hello" {
		t.Errorf("GetTextStrings() = %v", strings)
	}
}

func TestCallToolResult_GetImageContent(t *testing.T) {
	result := CallToolResult{
		Content: []interface{}{
			map[string]interface{}{"type": "image", "data": "Zm9v", "mimeType": "image/png"},
		},
	}

	images := result.GetImageContent()
	if len(images) != 1 {
		t.Fatalf("GetImageContent() returned %d items, want 1", len(images))
	}
	if images[0].MimeType != "image/png" || images[0].Data != "Zm9v" {
		t.Errorf("unexpected image content: %+v", images[0])
	}
}

func TestCallToolResult_GetAllContent(t *testing.T) {
	result := CallToolResult{
		Content: []interface{}{
			map[string]interface{}{"type": "text", "text": "a"},
			map[string]interface{}{"type": "audio", "data": "Zm9v", "mimeType": "audio/mpeg"},
			map[string]interface{}{
				"type": "resource",
				"resource": map[string]interface{}{
					"uri":  "file:///a.txt",
					"name": "a.txt",
				},
			},
		},
	}

	all := result.GetAllContent()
	if len(all) != 3 {
		t.Fatalf("GetAllContent() returned %d items, want 3", len(all))
	}

	var sawText, sawAudio, sawResource bool
	for _, c := range all {
		switch c.ContentType() {
		case ContentTypeText:
			sawText = true
		case ContentTypeAudio:
			sawAudio = true
		case ContentTypeResource:
			sawResource = true
			rc, ok := c.(ResourceContent)
			if !ok || rc.Resource == nil || rc.Resource.URI != "file:///a.txt" {
				t.Errorf("unexpected resource content: %+v", c)
			}
		}
	}
	if !sawText || !sawAudio || !sawResource {
		t.Errorf("missing expected content kinds: text=%v audio=%v resource=%v", sawText, sawAudio, sawResource)
	}
}

func TestCallToolResult_GetContentType(t *testing.T) {
	empty := CallToolResult{}
	if got := empty.GetContentType(); got != "" {
		t.Errorf("GetContentType() on empty result = %q, want empty", got)
	}

	result := CallToolResult{
		Content: []interface{}{map[string]interface{}{"type": "text", "text": "x"}},
	}
	if got := result.GetContentType(); got != ContentTypeText {
		t.Errorf("GetContentType() = %q, want %q", got, ContentTypeText)
	}
}
