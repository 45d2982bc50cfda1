/*
Package client drives the MCP session state machine: connect, initialize,
capability-gated discovery and invocation, disconnect.

# Basic Usage

	c := client.New(client.WithClientInfo("my-app", "1.0.0"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := c.Connect(ctx, stdio.ServerConfig{
		Command: "python",
		Args:    []string{"my_mcp_server.py"},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Disconnect()

	tools, err := c.ListTools(ctx)

# State Machine

A Client is one of four states: Disconnected, Connecting, Connected, or
Error. Connect moves Disconnected -> Connecting, spawns the transport,
performs the initialize handshake, sends the initialized notification,
and on success moves to Connected. Any failure along the way moves the
client to Error with the failure reason recorded, and best-effort closes
any transport that was spawned.

Every discovery and invocation method requires Connected; a call issued
while still Connecting — including one racing a concurrent Connect —
fails with NotConnected rather than observing partial state.

# Capability Gating

ListTools, ListResources, and ListPrompts each check the corresponding
server capability advertised during initialize. If the server did not
advertise it, the method returns an empty list and issues no request on
the wire. ReadResource and GetPrompt check the resources and prompts
capability the same way and return a nil result with no request when it
is absent. CallTool carries no such client-side gate — it relies on the
server to reject calls it does not support.

# Thread Safety

Client is safe for concurrent use: every exported method takes the
client's internal mutex for its state check.
*/
package client
