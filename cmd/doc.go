// Package cmd provides the command-line interface for mcp-energy.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//
// The CLI runs the serve command when no subcommand is specified, so
// `mcp-energy` on its own starts the MCP server over STDIO.
//
// Command Structure:
//
//	mcp-energy [flags]                 # Starts the MCP server (default)
//	mcp-energy serve [flags]           # Explicitly starts the MCP server
//	mcp-energy version                 # Shows version information
//	mcp-energy help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-energy serve --transport stdio           # Default STDIO transport
//	mcp-energy serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-energy serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// The serve command also reads configuration from environment variables
// (optionally loaded from a .env file): USER_POSTCODE for the default
// postcode of carbon intensity lookups, and HEATPUMP_API_URL,
// HEATPUMP_TOKEN and HEATPUMP_SERIAL for the heat pump tools.
package cmd
