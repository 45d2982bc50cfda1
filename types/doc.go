/*
Package types contains all MCP protocol type definitions.

This package provides comprehensive type definitions for the Model Context Protocol (MCP)
specification version 2025-06-18. All types are designed for JSON serialization;
they carry no validation of their own.

# Core Protocol Types

The package defines all fundamental MCP domain types:

  - Capabilities and the initialize handshake result
  - Content types for text, image, audio, resource links, and embedded resources
  - Tool definitions and schemas
  - Resource definitions and their contents
  - Prompt definitions and arguments

The JSON-RPC envelope itself (Request/Response/Notification) lives in
package protocol, not here.

# Content Types

MCP supports various content types for rich data exchange:

	// Text content
	text := &types.TextContent{
		Type: types.ContentTypeText,
		Text: "Hello, world!",
	}

	// Image content
	image := &types.ImageContent{
		Type:     types.ContentTypeImage,
		Data:     base64ImageData,
		MimeType: "image/png",
	}

# Protocol Constants

Important protocol constants are defined:

	const LatestProtocolVersion = "2025-06-18"

	const (
		ContentTypeText  = "text"
		ContentTypeImage = "image"
		ContentTypeAudio = "audio"
	)

# Tool Definitions

Tools are defined with comprehensive schemas:

	tool := types.Tool{
		BaseMetadata: types.BaseMetadata{Name: "calculator"},
		Description:  "Basic calculator operations",
		InputSchema: types.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"operation": map[string]interface{}{
					"type": "string",
					"enum": []string{"add", "subtract", "multiply", "divide"},
				},
				"a": map[string]interface{}{"type": "number"},
				"b": map[string]interface{}{"type": "number"},
			},
			Required: []string{"operation", "a", "b"},
		},
	}

# Resource Management

Resources represent external data sources:

	resource := types.Resource{
		BaseMetadata: types.BaseMetadata{Name: "config"},
		Description:  "Application configuration",
		URI:          "file:///app/config.json",
		MimeType:     "application/json",
	}

Tool, Resource, Prompt, and PromptArgument each declare their own
Description field, which takes the "description" JSON key; a Description
set inside their embedded BaseMetadata is not serialized.

# JSON Serialization

All types support proper JSON marshaling and unmarshaling:

	data, err := json.Marshal(tool)
	if err != nil {
		return err
	}

	var unmarshaled types.Tool
	err = json.Unmarshal(data, &unmarshaled)

# Validation

Types perform no validation. Decoding does not enforce required fields: a
field missing from the JSON is left at its zero value.

# Protocol Compliance

Field names and JSON keys follow the MCP schema.
*/
package types
