// Package heatpump is a client for the heat-pump vendor cloud API.
//
// Consumption, topology and settings responses have stable shapes and
// decode into typed structs. Diagnostics and live system state do not:
// their shape varies by device type and firmware, so they decode into
// schema-less telemetry records and are rendered heuristically.
package heatpump
