// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
//
// The mcpserver package implements an MCP-compliant server that exposes
// general time utilities. It uses the mark3labs/mcp-go library to handle
// the protocol details and registers the time tools and the timezone
// catalog resource.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/utilmcp/timekit/clock"
	"github.com/utilmcp/timekit/config"
)

// ZonesResourceURI is the URI of the timezone catalog resource
const ZonesResourceURI = "time://zones"

// MCPServer represents the MCP server
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	clock     clock.Clock
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, clk clock.Clock) (*MCPServer, error) {
	s := &MCPServer{
		config: cfg,
		logger: logger,
		clock:  clk,
	}

	// Log configuration parameters on startup
	logger.Info("configuration loaded",
		zap.String("server.transport", s.config.Server.Transport),
		zap.String("server.host", s.config.Server.Host),
		zap.Int("server.port", s.config.Server.Port),
		zap.String("time.source", s.config.Time.Source),
		zap.String("time.default_timezone", s.config.Time.DefaultTimezone),
		zap.String("time.format", s.config.Time.Format),
	)

	// Create the MCP server
	s.mcpServer = server.NewMCPServer("utility-server", "1.0.0",
		server.WithInstructions("A general-purpose utility server providing current time lookup, Unix timestamps and timestamp formatting for AI clients."),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	// Register tools and resources
	s.registerTimeTools()
	s.registerZonesResource()

	return s, nil
}

// registerTimeTools registers the time query and conversion tools
func (s *MCPServer) registerTimeTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_current_time",
		Description: "Get the current time in the requested IANA timezone",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "IANA timezone name such as 'Asia/Shanghai', 'UTC', 'America/New_York', 'Europe/London' or 'Asia/Tokyo' (optional, defaults to the server's configured timezone)",
				},
			},
		},
	}, s.handleGetCurrentTime)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_timestamp",
		Description: "Get the current Unix timestamp in seconds. The value is the same in every timezone.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, s.handleGetTimestamp)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "format_timestamp",
		Description: "Convert a Unix timestamp in seconds to a readable time in the requested IANA timezone",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"timestamp": map[string]any{
					"type":        "integer",
					"description": "Unix timestamp in seconds",
				},
				"timezone": map[string]any{
					"type":        "string",
					"description": "Target IANA timezone name (optional, defaults to the server's configured timezone)",
				},
			},
			Required: []string{"timestamp"},
		},
	}, s.handleFormatTimestamp)
}

// registerZonesResource registers the timezone catalog resource
func (s *MCPServer) registerZonesResource() {
	resource := mcp.NewResource(ZonesResourceURI, "Common IANA timezones",
		mcp.WithResourceDescription("JSON list of commonly used IANA timezone names accepted by the time tools"),
		mcp.WithMIMEType("application/json"),
	)

	s.mcpServer.AddResource(resource, s.handleZonesResource)
}

// handleGetCurrentTime handles the get_current_time tool
func (s *MCPServer) handleGetCurrentTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timezone := request.GetString("timezone", s.config.Time.DefaultTimezone)

	loc, err := clock.LoadZone(timezone)
	if err != nil {
		s.logger.Warn("current time requested for unknown timezone",
			zap.String("timezone", timezone))
		return toolError(err), nil
	}

	now := s.clock.Now().In(loc)
	formatted := now.Format(s.config.Time.Format)

	s.logger.Debug("current time served",
		zap.String("timezone", timezone),
		zap.String("result", formatted))

	return toolText(formatted), nil
}

// handleGetTimestamp handles the get_timestamp tool
func (s *MCPServer) handleGetTimestamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ts := s.clock.Now().Unix()

	s.logger.Debug("timestamp served", zap.Int64("timestamp", ts))

	return toolText(fmt.Sprintf("%d", ts)), nil
}

// handleFormatTimestamp handles the format_timestamp tool
func (s *MCPServer) handleFormatTimestamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ts, err := request.RequireInt("timestamp")
	if err != nil {
		return nil, fmt.Errorf("timestamp parameter is required: %w", err)
	}

	timezone := request.GetString("timezone", s.config.Time.DefaultTimezone)

	loc, err := clock.LoadZone(timezone)
	if err != nil {
		return toolError(err), nil
	}

	t, err := clock.FromUnix(int64(ts))
	if err != nil {
		s.logger.Warn("timestamp rejected", zap.Int("timestamp", ts))
		return toolError(err), nil
	}

	formatted := t.In(loc).Format(s.config.Time.Format)

	s.logger.Debug("timestamp formatted",
		zap.Int("timestamp", ts),
		zap.String("timezone", timezone),
		zap.String("result", formatted))

	return toolText(formatted), nil
}

// handleZonesResource serves the timezone catalog resource
func (s *MCPServer) handleZonesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(clock.CommonZones)
	if err != nil {
		return nil, fmt.Errorf("failed to encode timezone catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ZonesResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// toolText builds a successful text result
func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

// toolError builds an error result that keeps the protocol session alive
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: err.Error(),
			},
		},
		IsError: true,
	}
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on HTTP with SSE transport. The event
// stream lives at /sse and client messages are posted to /messages.
func (s *MCPServer) ServeSSE() error {
	addr := s.config.ListenAddr()
	s.logger.Info("starting MCP server on SSE",
		zap.String("addr", addr),
		zap.String("sse_endpoint", "/sse"),
		zap.String("message_endpoint", "/messages"))

	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/messages"),
	)
	return sseServer.Start(addr)
}

// ServeHTTP starts the server on the streamable HTTP transport
func (s *MCPServer) ServeHTTP() error {
	addr := s.config.ListenAddr()
	s.logger.Info("starting MCP server on HTTP", zap.String("addr", addr))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(addr)
}

// GetMCPServer returns the underlying MCP server for fx
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
