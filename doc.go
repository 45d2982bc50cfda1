/*
Package mcp is the root of a Go client library for the Model Context
Protocol (MCP) over child-process stdio: spawn a server, perform the
initialize handshake, discover and invoke tools, resources, and prompts,
and tear the process down cleanly.

# Quick Start

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/mcpcore/mcp-go/client"
		"github.com/mcpcore/mcp-go/transport/stdio"
	)

	func main() {
		c := client.New(client.WithClientInfo("my-app", "1.0.0"))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := c.Connect(ctx, stdio.ServerConfig{
			Command: "python",
			Args:    []string{"my_mcp_server.py"},
		}); err != nil {
			log.Fatal(err)
		}
		defer c.Disconnect()

		tools, err := c.ListTools(ctx)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("found %d tools", len(tools))
	}

# Package Structure

  - client: the MCP session state machine (connect, discover, invoke, disconnect)
  - transport/stdio: the child-process stdio transport
  - correlator: matches asynchronous responses to outstanding requests
  - protocol: the line-framed JSON-RPC 2.0 message model
  - types: MCP domain types (capabilities, tools, resources, prompts, content)
  - mcperr: the shared error taxonomy

# Protocol Support

This library speaks MCP protocol version 2025-06-18 and supports Tools,
Resources, and Prompts. Server-initiated requests (sampling, roots,
elicitation) are out of scope: the transport logs their method name and
discards them.

# Thread Safety

client.Client is safe for concurrent use; see its package documentation
for the state-machine guarantees that follow from that.
*/
package mcp
