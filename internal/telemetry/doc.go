// Package telemetry renders schema-less heat-pump telemetry into
// readable markdown reports.
//
// The upstream vendor API's response shape varies by device type and
// firmware and is not contractually fixed, so records are modeled as an
// insertion-ordered mapping of string keys to a small closed value
// variant (number, boolean, text, nested record). Formatting dispatches
// on that variant plus ordered key-name heuristics instead of a fixed
// field list; unrecognized fields are omitted rather than treated as
// errors, so an unfamiliar schema still produces a best-effort report.
package telemetry
