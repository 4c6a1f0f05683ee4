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
