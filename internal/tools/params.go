package tools

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cdinu/mcp-energy/internal/validate"
)

// StringArg returns the string value of a request argument, or "" when
// the argument is absent or not a string.
func StringArg(request mcp.CallToolRequest, key string) string {
	v, _ := request.GetArguments()[key].(string)
	return v
}

// PostcodeArg resolves and normalizes the postcode for a request. An
// explicit argument wins over the configured fallback. Returns the raw
// postcode as given and its outward code. An empty result with a nil
// error means no postcode was supplied at all.
func PostcodeArg(request mcp.CallToolRequest, key, fallback string) (raw, outward string, err error) {
	raw = StringArg(request, key)
	if raw == "" {
		raw = fallback
	}
	if raw == "" {
		return "", "", nil
	}

	outward, err = validate.OutwardCode(raw)
	if err != nil {
		return raw, "", fmt.Errorf("%w: %q is not a valid UK postcode", validate.ErrInvalidPostcode, raw)
	}
	return raw, outward, nil
}

// DatetimeArg parses the named ISO-8601 datetime argument. A missing
// argument defaults to the current time.
func DatetimeArg(request mcp.CallToolRequest, key string) (time.Time, error) {
	raw := StringArg(request, key)
	if raw == "" {
		return time.Now(), nil
	}

	t, err := validate.ParseDateTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, use ISO 8601 format (e.g. 2025-05-01T01:00Z)", validate.ErrInvalidInstant, raw)
	}
	return t, nil
}

// DateArg parses a required calendar-date argument (YYYY-MM-DD or any
// accepted ISO-8601 variant).
func DateArg(request mcp.CallToolRequest, key string) (time.Time, error) {
	raw := StringArg(request, key)
	t, err := validate.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, use YYYY-MM-DD format", validate.ErrInvalidInstant, raw)
	}
	return t, nil
}
