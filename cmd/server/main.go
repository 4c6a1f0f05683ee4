// Package main is the entry point for the timekit MCP server.
//
// Timekit implements a general-purpose Model Context Protocol (MCP)
// server exposing time utilities: current time lookup in arbitrary IANA
// timezones, Unix timestamp retrieval, and timestamp formatting. The
// server supports stdio, SSE and streamable HTTP transports.
//
// The application uses Uber's fx framework for dependency injection and
// lifecycle management, with zap for structured logging, viper for
// configuration, and cobra for the command line surface.
package main

import (
	"fmt"
	"os"

	// Embed the IANA zone database so minimal container images can
	// resolve timezones without a tzdata package.
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/utilmcp/timekit/clock"
	"github.com/utilmcp/timekit/config"
	"github.com/utilmcp/timekit/logger"
	"github.com/utilmcp/timekit/mcpserver"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timekit",
		Short: "General-purpose utility MCP server",
		Long: `Timekit serves time utilities over the Model Context Protocol.

By default the server speaks MCP over stdio for local clients. With
--remote it serves SSE over HTTP, binding the address given by --host
and --port (or the HOST and PORT environment variables).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyFlagOverrides(cmd)
			runApp()
			return nil
		},
	}

	cmd.Flags().Bool("remote", false, "serve MCP over the network (SSE) instead of stdio")
	cmd.Flags().String("transport", "", "transport to serve: stdio, sse or http")
	cmd.Flags().String("host", "", "listen address for network transports")
	cmd.Flags().Int("port", 0, "listen port for network transports")
	cmd.MarkFlagsMutuallyExclusive("remote", "transport")

	return cmd
}

// applyFlagOverrides maps explicit CLI flags onto viper keys before the
// configuration is loaded. viper.Set has the highest precedence, so
// flags win over HOST/PORT env vars and the config file.
func applyFlagOverrides(cmd *cobra.Command) {
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		viper.Set("server.transport", "sse")
	}
	if cmd.Flags().Changed("transport") {
		transport, _ := cmd.Flags().GetString("transport")
		viper.Set("server.transport", transport)
	}
	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		viper.Set("server.host", host)
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		viper.Set("server.port", port)
	}
}

func runApp() {
	app := fx.New(
		// Provide dependencies
		fx.Provide(
			// Config
			config.New,

			// Logger with configuration
			logger.NewFromConfig,

			// Time source based on config
			clock.NewClock,

			// MCP Server
			mcpserver.New,
		),

		// Start the appropriate transport based on config
		fx.Invoke(
			func(cfg *config.Config, server *mcpserver.MCPServer) {
				switch cfg.Server.Transport {
				case "stdio":
					// Use fx to run this as a background task
					go func() {
						if err := server.ServeStdio(); err != nil {
							panic(err)
						}
					}()
				case "sse":
					go func() {
						if err := server.ServeSSE(); err != nil {
							panic(err)
						}
					}()
				case "http":
					go func() {
						if err := server.ServeHTTP(); err != nil {
							panic(err)
						}
					}()
				default:
					panic("unsupported transport: " + cfg.Server.Transport)
				}
			},
		),

		// Use the application logger for fx logs
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	// Start the application
	app.Run()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
