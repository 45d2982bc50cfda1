/*
Package stdio spawns an MCP server as a child process and speaks
line-framed JSON-RPC 2.0 over its stdin/stdout.

# Basic Usage

	t, err := stdio.New(stdio.ServerConfig{
		Command: "python",
		Args:    []string{"my_mcp_server.py"},
		Cwd:     "/path/to/server",
		Env:     map[string]string{"DEBUG": "1"},
	})
	if err != nil {
		// handle spawn failure
	}
	defer t.Close()

	raw, err := t.SendRequest(ctx, "tools/list", nil)

# Process Lifecycle

New starts the child and three background tasks: one writes outbound
requests and notifications, one reads and routes inbound responses and
notifications, one drains stderr for logging. If any of the three ends —
whether from an error or the child exiting — the transport collapses:
every outstanding SendRequest call fails with a ChannelClosed error, and
the child is killed so it never outlives the transport.

# Correlation

Each request carries a fresh UUID v4 string id, registered with the
correlator before the request is written to the wire. Responses are
matched back to their caller by id; a response for an id nobody is
waiting on (already delivered, or its caller gave up on timeout) is
logged and dropped rather than treated as an error.

# Timeouts

SendRequest enforces a fixed 30 second deadline by default, overridable
via WithRequestTimeout for tests. A request that times out is cancelled
in the correlator; a response that arrives after the fact is simply
dropped.

# Notifications

Server-sent notifications are routed to the configured
NotificationHandler, or logged at info level if none was set. Inbound
requests from the server are not supported by this client and are
logged and discarded.
*/
package stdio
