// Package heatpump implements the MCP tools for heat-pump telemetry:
// energy consumption, advanced diagnostics, system topology, settings
// and live state, rendered as LLM-readable markdown. Device serial
// numbers are masked throughout.
package heatpump
