package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/utilmcp/timekit/clock"
	"github.com/utilmcp/timekit/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Transport: "stdio",
			Host:      "0.0.0.0",
			Port:      8000,
		},
		Logging: config.LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
		Time: config.TimeConfig{
			Source:          "system",
			DefaultTimezone: "Asia/Shanghai",
			Format:          "2006-01-02 15:04:05 MST",
		},
	}
}

// pinned is 2026-01-02T15:04:05Z; used by handler tests for
// deterministic output
var pinned = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func testServer(t *testing.T) *MCPServer {
	t.Helper()
	server, err := New(testConfig(), zaptest.NewLogger(t), clock.NewFixedClock(pinned))
	require.NoError(t, err)
	return server
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func TestNewMCPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := testConfig()
	clk := clock.NewFixedClock(pinned)

	server, err := New(cfg, logger, clk)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, cfg, server.config)
	assert.Equal(t, logger, server.logger)
	assert.Equal(t, clk, server.clock)
	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.GetMCPServer())
}

func TestHandleGetCurrentTime(t *testing.T) {
	server := testServer(t)
	ctx := context.Background()

	t.Run("ExplicitTimezone", func(t *testing.T) {
		result, err := server.handleGetCurrentTime(ctx, callRequest("get_current_time", map[string]any{
			"timezone": "UTC",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "2026-01-02 15:04:05 UTC", resultText(t, result))
	})

	t.Run("DefaultTimezone", func(t *testing.T) {
		// Config default is Asia/Shanghai, UTC+8
		result, err := server.handleGetCurrentTime(ctx, callRequest("get_current_time", map[string]any{}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "2026-01-02 23:04:05 CST", resultText(t, result))
	})

	t.Run("InvalidTimezone", func(t *testing.T) {
		result, err := server.handleGetCurrentTime(ctx, callRequest("get_current_time", map[string]any{
			"timezone": "Not/AZone",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid timezone name: Not/AZone")
	})
}

func TestHandleGetTimestamp(t *testing.T) {
	server := testServer(t)

	result, err := server.handleGetTimestamp(context.Background(), callRequest("get_timestamp", map[string]any{}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "1767366245", resultText(t, result))
}

func TestHandleFormatTimestamp(t *testing.T) {
	server := testServer(t)
	ctx := context.Background()

	t.Run("ExplicitTimezone", func(t *testing.T) {
		result, err := server.handleFormatTimestamp(ctx, callRequest("format_timestamp", map[string]any{
			"timestamp": 1767366245,
			"timezone":  "UTC",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "2026-01-02 15:04:05 UTC", resultText(t, result))
	})

	t.Run("DefaultTimezone", func(t *testing.T) {
		result, err := server.handleFormatTimestamp(ctx, callRequest("format_timestamp", map[string]any{
			"timestamp": 0,
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "1970-01-01 08:00:00 CST", resultText(t, result))
	})

	t.Run("MissingTimestamp", func(t *testing.T) {
		_, err := server.handleFormatTimestamp(ctx, callRequest("format_timestamp", map[string]any{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timestamp parameter is required")
	})

	t.Run("InvalidTimezone", func(t *testing.T) {
		result, err := server.handleFormatTimestamp(ctx, callRequest("format_timestamp", map[string]any{
			"timestamp": 0,
			"timezone":  "Not/AZone",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid timezone name")
	})

	t.Run("OutOfRangeTimestamp", func(t *testing.T) {
		result, err := server.handleFormatTimestamp(ctx, callRequest("format_timestamp", map[string]any{
			"timestamp": 300000000000,
			"timezone":  "UTC",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "out of representable range")
	})
}

func TestHandleZonesResource(t *testing.T) {
	server := testServer(t)

	contents, err := server.handleZonesResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text resource contents")
	assert.Equal(t, ZonesResourceURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var zones []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &zones))
	assert.Equal(t, clock.CommonZones, zones)
	assert.Contains(t, zones, "Asia/Shanghai")
}
