// Package driving holds the use-case interfaces the CLI, REST and MCP
// adapters call. internal/core/services implements them.
package driving
