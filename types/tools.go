// Package types contains MCP protocol tool definitions
package types

// Tool represents a tool the client can call
type Tool struct {
	BaseMetadata
	Description  string            `json:"description,omitempty"`
	InputSchema  ToolInputSchema   `json:"inputSchema"`
	OutputSchema *ToolOutputSchema `json:"outputSchema,omitempty"`
	Annotations  *ToolAnnotations  `json:"annotations,omitempty"`
	Meta         Meta              `json:"_meta,omitempty"`
}

// ToolInputSchema defines the expected parameters for the tool
type ToolInputSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// ToolOutputSchema defines the structure of the tool's output
type ToolOutputSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// ToolAnnotations provide additional properties describing a Tool to clients
type ToolAnnotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    bool   `json:"readOnlyHint,omitempty"`
	DestructiveHint bool   `json:"destructiveHint,omitempty"`
	IdempotentHint  bool   `json:"idempotentHint,omitempty"`
	OpenWorldHint   bool   `json:"openWorldHint,omitempty"`
}

// ListToolsResult is the server's response to a tools/list request
type ListToolsResult struct {
	Tools      []Tool  `json:"tools"`
	NextCursor *Cursor `json:"nextCursor,omitempty"`
	Meta       Meta    `json:"_meta,omitempty"`
}

// CallToolResult is the server's response to a tools/call request
type CallToolResult struct {
	Content []interface{} `json:"content"` // Using interface{} for flexible JSON unmarshaling
	IsError bool          `json:"isError,omitempty"`
	Meta    Meta          `json:"_meta,omitempty"`
}

// GetTextContent extracts text content from the result as properly typed TextContent structs
func (ctr *CallToolResult) GetTextContent() []TextContent {
	var texts []TextContent
	for _, content := range ctr.Content {
		if contentMap, ok := content.(map[string]interface{}); ok {
			if contentType, _ := contentMap["type"].(string); contentType == ContentTypeText {
				if tc, ok := parseContentBlock(contentMap).(TextContent); ok {
					texts = append(texts, tc)
				}
			}
		}
	}
	return texts
}

// GetTextStrings is a convenience method that returns just the text strings
func (ctr *CallToolResult) GetTextStrings() []string {
	var texts []string
	textContents := ctr.GetTextContent()
	for _, tc := range textContents {
		texts = append(texts, tc.Text)
	}
	return texts
}

// GetImageContent extracts image content from the result
func (ctr *CallToolResult) GetImageContent() []ImageContent {
	var images []ImageContent
	for _, content := range ctr.Content {
		if contentMap, ok := content.(map[string]interface{}); ok {
			if contentType, _ := contentMap["type"].(string); contentType == ContentTypeImage {
				if ic, ok := parseContentBlock(contentMap).(ImageContent); ok {
					images = append(images, ic)
				}
			}
		}
	}
	return images
}

// GetAudioContent extracts audio content from the result
func (ctr *CallToolResult) GetAudioContent() []AudioContent {
	var audios []AudioContent
	for _, content := range ctr.Content {
		if contentMap, ok := content.(map[string]interface{}); ok {
			if contentType, _ := contentMap["type"].(string); contentType == ContentTypeAudio {
				if ac, ok := parseContentBlock(contentMap).(AudioContent); ok {
					audios = append(audios, ac)
				}
			}
		}
	}
	return audios
}

// GetResourceLinkContent extracts resource link content from the result
func (ctr *CallToolResult) GetResourceLinkContent() []ResourceLinkContent {
	var resourceLinks []ResourceLinkContent
	for _, content := range ctr.Content {
		if contentMap, ok := content.(map[string]interface{}); ok {
			if contentType, _ := contentMap["type"].(string); contentType == ContentTypeResourceLink {
				if rlc, ok := parseContentBlock(contentMap).(ResourceLinkContent); ok {
					resourceLinks = append(resourceLinks, rlc)
				}
			}
		}
	}
	return resourceLinks
}

// GetResourceContent extracts embedded resource content from the result
func (ctr *CallToolResult) GetResourceContent() []ResourceContent {
	var resources []ResourceContent
	for _, content := range ctr.Content {
		if contentMap, ok := content.(map[string]interface{}); ok {
			if contentType, _ := contentMap["type"].(string); contentType == ContentTypeResource {
				if rc, ok := parseContentBlock(contentMap).(ResourceContent); ok {
					resources = append(resources, rc)
				}
			}
		}
	}
	return resources
}

// GetAllContent returns the text, image, audio, resource link, and
// resource items as their proper types, grouped in that order rather than
// in the order the server sent them. Items of any other type are left out;
// they remain available in Content.
func (ctr *CallToolResult) GetAllContent() []ContentBlock {
	var contents []ContentBlock

	// Add text content
	for _, tc := range ctr.GetTextContent() {
		contents = append(contents, tc)
	}

	// Add image content
	for _, ic := range ctr.GetImageContent() {
		contents = append(contents, ic)
	}

	// Add audio content
	for _, ac := range ctr.GetAudioContent() {
		contents = append(contents, ac)
	}

	// Add resource link content
	for _, rlc := range ctr.GetResourceLinkContent() {
		contents = append(contents, rlc)
	}

	// Add resource content
	for _, rc := range ctr.GetResourceContent() {
		contents = append(contents, rc)
	}

	return contents
}

// GetContentType returns the type of the first content item
func (ctr *CallToolResult) GetContentType() string {
	if len(ctr.Content) == 0 {
		return ""
	}
	if contentMap, ok := ctr.Content[0].(map[string]interface{}); ok {
		if contentType, ok := contentMap["type"].(string); ok {
			return contentType
		}
	}
	return ""
}

// parseContentBlock converts a decoded content map to its concrete
// ContentBlock type by sniffing the "type" discriminator. An unrecognized
// or missing type falls back to an empty TextContent rather than being
// dropped, so callers see every entry the server sent.
func parseContentBlock(m map[string]interface{}) ContentBlock {
	contentType, _ := m["type"].(string)
	annotations := func() *Annotations {
		if a, ok := m["annotations"].(map[string]interface{}); ok {
			return parseAnnotations(a)
		}
		return nil
	}

	switch contentType {
	case ContentTypeImage:
		ic := ImageContent{Type: contentType, Annotations: annotations()}
		ic.Data, _ = m["data"].(string)
		ic.MimeType, _ = m["mimeType"].(string)
		return ic
	case ContentTypeAudio:
		ac := AudioContent{Type: contentType, Annotations: annotations()}
		ac.Data, _ = m["data"].(string)
		ac.MimeType, _ = m["mimeType"].(string)
		return ac
	case ContentTypeResourceLink:
		rlc := ResourceLinkContent{Type: contentType, Annotations: annotations()}
		rlc.URI, _ = m["uri"].(string)
		rlc.Name, _ = m["name"].(string)
		rlc.Description, _ = m["description"].(string)
		rlc.MimeType, _ = m["mimeType"].(string)
		return rlc
	case ContentTypeResource:
		rc := ResourceContent{Type: contentType, Annotations: annotations()}
		if resourceData, ok := m["resource"].(map[string]interface{}); ok {
			resource := parseResource(resourceData)
			rc.Resource = &resource
		}
		return rc
	default:
		tc := TextContent{Type: ContentTypeText, Annotations: annotations()}
		tc.Text, _ = m["text"].(string)
		return tc
	}
}

// parseAnnotations converts a map to Annotations struct
func parseAnnotations(annotationMap map[string]interface{}) *Annotations {
	annotations := &Annotations{}

	if audience, ok := annotationMap["audience"].([]interface{}); ok {
		for _, role := range audience {
			if roleStr, ok := role.(string); ok {
				annotations.Audience = append(annotations.Audience, Role(roleStr))
			}
		}
	}

	if priority, ok := annotationMap["priority"].(float64); ok {
		priorityInt := int(priority)
		annotations.Priority = &priorityInt
	}

	return annotations
}

// parseResource converts a map to Resource struct
func parseResource(resourceMap map[string]interface{}) Resource {
	resource := Resource{}

	if uri, ok := resourceMap["uri"].(string); ok {
		resource.URI = uri
	}
	if name, ok := resourceMap["name"].(string); ok {
		resource.BaseMetadata.Name = name
	}
	if description, ok := resourceMap["description"].(string); ok {
		resource.Description = description
	}
	if mimeType, ok := resourceMap["mimeType"].(string); ok {
		resource.MimeType = mimeType
	}
	if size, ok := resourceMap["size"].(float64); ok {
		sizeInt := int(size)
		resource.Size = &sizeInt
	}

	// Parse annotations if present
	if annotations, ok := resourceMap["annotations"].(map[string]interface{}); ok {
		resource.Annotations = parseAnnotations(annotations)
	}

	return resource
}
