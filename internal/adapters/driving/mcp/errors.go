// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// screener. It lets AI assistants query candidates and book interviews.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// errNotConfigured is returned by tools whose backing service was not wired.
var errNotConfigured = errors.New("mcp: service not configured")
