// Package middleware provides HTTP middleware for the MCP energy
// server's network transports. These middleware functions handle
// security headers, CORS, and request metrics.
package middleware
