// Package client drives the MCP session state machine over a stdio
// transport: connect, initialize, capability-gated discovery and
// invocation, and disconnect.
package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcpcore/mcp-go/mcperr"
	"github.com/mcpcore/mcp-go/transport/stdio"
	"github.com/mcpcore/mcp-go/types"
)

// State is one of the four states the session client can be in.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateError
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Config holds client-level tunables independent of any one connection.
type Config struct {
	ClientName    string
	ClientVersion string
	Timeout       time.Duration
	Logger        *slog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithClientInfo sets the name and version advertised during initialize.
func WithClientInfo(name, version string) Option {
	return func(c *Config) {
		c.ClientName = name
		c.ClientVersion = version
	}
}

// WithTimeout sets the per-request timeout enforced by the underlying
// transport for every call made after Connect.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithLogger sets the logger passed through to the underlying transport.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func defaultConfig() *Config {
	return &Config{
		ClientName:    "mcp-go",
		ClientVersion: "0.1.0",
		Timeout:       30 * time.Second,
		Logger:        slog.Default(),
	}
}

// Client drives one MCP session at a time. The zero value is not usable;
// use New. A Client is safe for concurrent use: every exported method
// takes the client's mutex, so a ListTools racing a still-running Connect
// observes StateConnecting and fails with NotConnected rather than racing
// the transport.
type Client struct {
	config *Config

	mu           sync.Mutex
	state        State
	errReason    string
	transport    *stdio.Transport
	serverInfo   *types.Implementation
	capabilities *types.ServerCapabilities
	tools        []types.Tool
}

// New creates a disconnected Client.
func New(opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{config: cfg, state: StateDisconnected}
}

// GetState reports the client's current state.
func (c *Client) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorReason returns the reason string recorded when the client entered
// StateError; empty in any other state.
func (c *Client) ErrorReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errReason
}

// GetServerInfo returns the implementation info reported by the server
// during the last successful initialize, or nil if never connected.
func (c *Client) GetServerInfo() *types.Implementation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverInfo
}

// GetCapabilities returns the server's advertised capabilities, or nil if
// never connected.
func (c *Client) GetCapabilities() *types.ServerCapabilities {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capabilities
}

// Connect spawns the configured server process, performs the initialize
// handshake, stores the negotiated capabilities, and emits the
// `initialized` notification. On any failure the client enters
// StateError with the failure recorded, and the transport (if any was
// spawned) is closed best-effort.
func (c *Client) Connect(ctx context.Context, cfg stdio.ServerConfig) error {
	c.mu.Lock()
	c.state = StateConnecting
	c.errReason = ""
	c.mu.Unlock()

	tr, err := stdio.New(cfg, stdio.WithLogger(c.config.Logger), stdio.WithRequestTimeout(c.config.Timeout))
	if err != nil {
		c.fail(err)
		return err
	}

	result, err := c.initialize(ctx, tr)
	if err != nil {
		tr.Close()
		c.fail(err)
		return err
	}

	if err := tr.SendNotification("notifications/initialized", nil); err != nil {
		tr.Close()
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.transport = tr
	c.serverInfo = &result.ServerInfo
	c.capabilities = &result.Capabilities
	c.tools = nil
	c.state = StateConnected
	c.mu.Unlock()

	return nil
}

type initializeParams struct {
	ProtocolVersion string                   `json:"protocolVersion"`
	Capabilities    types.ClientCapabilities `json:"capabilities"`
	ClientInfo      types.Implementation     `json:"clientInfo"`
}

func (c *Client) initialize(ctx context.Context, tr *stdio.Transport) (*types.InitializeResult, error) {
	params := initializeParams{
		ProtocolVersion: types.LatestProtocolVersion,
		Capabilities: types.ClientCapabilities{
			Tools:     &types.ToolsCapability{List: true},
			Prompts:   &types.PromptsCapability{List: true},
			Resources: &types.ResourcesCapability{List: true},
		},
		ClientInfo: types.Implementation{
			Name:    c.config.ClientName,
			Version: c.config.ClientVersion,
		},
	}

	raw, err := tr.SendRequest(ctx, "initialize", params)
	if err != nil {
		return nil, err
	}

	var result types.InitializeResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// fail records the failure reason and moves the client to StateError.
func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	c.errReason = err.Error()
	c.transport = nil
}

// connectedTransport returns the active transport, or a NotConnected
// error if the client is not in StateConnected — including while a
// concurrent Connect is still in StateConnecting.
func (c *Client) connectedTransport() (*stdio.Transport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected || c.transport == nil {
		return nil, mcperr.NotConnected("client is %s, not connected", c.state)
	}
	return c.transport, nil
}

func (c *Client) hasCapability(has func(*types.ServerCapabilities) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capabilities != nil && has(c.capabilities)
}

// ListTools returns the server's advertised tools. If the server's
// capabilities do not include tools, it returns an empty list and issues
// no wire request.
func (c *Client) ListTools(ctx context.Context) ([]types.Tool, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}
	if !c.hasCapability(func(caps *types.ServerCapabilities) bool { return caps.Tools != nil }) {
		return nil, nil
	}

	raw, err := tr.SendRequest(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}

	var result types.ListToolsResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tools = result.Tools
	c.mu.Unlock()

	return result.Tools, nil
}

// CallTool invokes a tool by name. It requires only a prior successful
// initialize; there is no client-side capability gate, matching the
// server's own authority over which tools it accepts calls for.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (*types.CallToolResult, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}

	params := struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments,omitempty"`
	}{Name: name, Arguments: arguments}

	raw, err := tr.SendRequest(ctx, "tools/call", params)
	if err != nil {
		return nil, err
	}

	var result types.CallToolResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResources returns the server's advertised resources, gated the
// same way ListTools is gated on the tools capability.
func (c *Client) ListResources(ctx context.Context) ([]types.Resource, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}
	if !c.hasCapability(func(caps *types.ServerCapabilities) bool { return caps.Resources != nil }) {
		return nil, nil
	}

	raw, err := tr.SendRequest(ctx, "resources/list", nil)
	if err != nil {
		return nil, err
	}
	var result types.ListResourcesResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result.Resources, nil
}

// ReadResource reads the content of a single resource by URI.
func (c *Client) ReadResource(ctx context.Context, uri string) (*types.ReadResourceResult, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}
	if !c.hasCapability(func(caps *types.ServerCapabilities) bool { return caps.Resources != nil }) {
		return nil, nil
	}

	params := struct {
		URI string `json:"uri"`
	}{URI: uri}

	raw, err := tr.SendRequest(ctx, "resources/read", params)
	if err != nil {
		return nil, err
	}
	var result types.ReadResourceResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPrompts returns the server's advertised prompts, gated on the
// prompts capability.
func (c *Client) ListPrompts(ctx context.Context) ([]types.Prompt, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}
	if !c.hasCapability(func(caps *types.ServerCapabilities) bool { return caps.Prompts != nil }) {
		return nil, nil
	}

	raw, err := tr.SendRequest(ctx, "prompts/list", nil)
	if err != nil {
		return nil, err
	}
	var result types.ListPromptsResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result.Prompts, nil
}

// GetPrompt retrieves a single prompt, rendered with the given arguments.
func (c *Client) GetPrompt(ctx context.Context, name string, arguments map[string]string) (*types.GetPromptResult, error) {
	tr, err := c.connectedTransport()
	if err != nil {
		return nil, err
	}
	if !c.hasCapability(func(caps *types.ServerCapabilities) bool { return caps.Prompts != nil }) {
		return nil, nil
	}

	params := struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments,omitempty"`
	}{Name: name, Arguments: arguments}

	raw, err := tr.SendRequest(ctx, "prompts/get", params)
	if err != nil {
		return nil, err
	}
	var result types.GetPromptResult
	if err := unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Disconnect closes the transport if present and resets the client to
// StateDisconnected, clearing cached tools and capabilities. It is
// idempotent and always returns nil: transport close failures are
// suppressed, matching the best-effort teardown policy.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	tr := c.transport
	c.transport = nil
	c.serverInfo = nil
	c.capabilities = nil
	c.tools = nil
	c.state = StateDisconnected
	c.errReason = ""
	c.mu.Unlock()

	if tr != nil {
		tr.Close()
	}
	return nil
}

func unmarshal(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return mcperr.Parse(err, "decode result")
	}
	return nil
}
