// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package implements an MCP-compliant server that exposes
// general time utilities: current time lookup in arbitrary IANA
// timezones, Unix timestamp retrieval, and timestamp formatting. It uses
// the mark3labs/mcp-go library to handle the protocol details and also
// publishes a time://zones resource listing commonly used timezone
// names.
//
// The server supports stdio, SSE and streamable HTTP transports as
// configured by the application configuration.
//
// Usage:
//
//	server, err := mcpserver.New(config, logger, clk)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = server.ServeStdio() // or server.ServeSSE() / server.ServeHTTP()
package mcpserver
