// Package carbon implements the MCP tools for UK grid carbon intensity
// data: current regional intensity, 24/48 hour forecasts (regional and
// national) and the national generation mix. Responses are rendered as
// LLM-readable markdown.
package carbon
