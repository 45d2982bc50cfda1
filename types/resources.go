// Package types contains MCP protocol resource definitions
package types

// Resource represents a known resource that the server is capable of reading
type Resource struct {
	BaseMetadata
	URI         string       `json:"uri"`
	Description string       `json:"description,omitempty"`
	MimeType    string       `json:"mimeType,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Size        *int         `json:"size,omitempty"`
	Meta        Meta         `json:"_meta,omitempty"`
}

// ResourceContents represents the contents of a specific resource or
// sub-resource. The server sends either Text or Blob, never both; the
// other is left empty rather than modeled as a separate type, since a
// caller reading a resource wants both shapes through one field check.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
	Meta     Meta   `json:"_meta,omitempty"`
}

// ResourceLink represents a resource that can be included in prompts or tool results
type ResourceLink struct {
	Resource
	Type string `json:"type"`
}

// Annotations provide additional metadata
type Annotations struct {
	Audience []Role `json:"audience,omitempty"`
	Priority *int   `json:"priority,omitempty"`
}

// ListResourcesResult is the server's response to a resources/list request
type ListResourcesResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor *Cursor    `json:"nextCursor,omitempty"`
	Meta       Meta       `json:"_meta,omitempty"`
}

// ReadResourceResult is the server's response to a resources/read request
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
	Meta     Meta               `json:"_meta,omitempty"`
}
