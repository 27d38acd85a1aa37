// Package logging provides structured logging utilities for the
// mcp-energy application.
//
// It centralizes logging patterns on the standard library's slog
// package: consistent attribute naming for tool invocations and
// upstream API calls, handler construction for the serve command, and
// hashing of device serial numbers so log lines can be correlated
// without leaking a full serial.
package logging
