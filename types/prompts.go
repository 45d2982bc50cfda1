// Package types contains MCP protocol prompt definitions
package types

import "encoding/json"

// Prompt represents a prompt or prompt template that the server offers
type Prompt struct {
	BaseMetadata
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
	Meta        Meta             `json:"_meta,omitempty"`
}

// PromptArgument describes an argument that a prompt can accept
type PromptArgument struct {
	BaseMetadata
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// PromptMessage describes a message returned as part of a prompt
type PromptMessage struct {
	Role    Role         `json:"role"`
	Content ContentBlock `json:"content"`
}

// UnmarshalJSON resolves Content to its concrete type by sniffing the
// "type" discriminator, since encoding/json cannot decode an object
// directly into a non-empty interface field.
func (pm *PromptMessage) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Role    Role                   `json:"role"`
		Content map[string]interface{} `json:"content"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	pm.Role = shadow.Role
	pm.Content = parseContentBlock(shadow.Content)
	return nil
}

// ListPromptsResult is the server's response to a prompts/list request
type ListPromptsResult struct {
	Prompts    []Prompt `json:"prompts"`
	NextCursor *Cursor  `json:"nextCursor,omitempty"`
	Meta       Meta     `json:"_meta,omitempty"`
}

// GetPromptResult is the server's response to a prompts/get request
type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
	Meta        Meta            `json:"_meta,omitempty"`
}
