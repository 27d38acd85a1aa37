package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyTool       = "tool"
	KeyOperation  = "operation"
	KeyAPI        = "api"
	KeyPostcode   = "postcode"
	KeySerialHash = "serial_hash"
	KeyDuration   = "duration"
	KeyStatus     = "status"
	KeyError      = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewLogger builds a slog.Logger writing to w with the given level
// ("debug", "info", "warn", "error") and format ("json" or "text").
// Unknown values fall back to info / text.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// Tool returns a slog attribute for the tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// API returns a slog attribute for the upstream API name.
func API(name string) slog.Attr {
	return slog.String(KeyAPI, name)
}

// Postcode returns a slog attribute for a normalized outward code.
// Outward codes identify a district, not an address, so they are safe
// to log as-is.
func Postcode(outward string) slog.Attr {
	return slog.String(KeyPostcode, outward)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeSerial returns a hashed representation of a device serial
// number for logging purposes. This allows correlation of log entries
// without exposing the serial itself.
func AnonymizeSerial(serial string) string {
	if serial == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(serial))
	return "device:" + hex.EncodeToString(hash[:8])
}

// SerialHash returns a slog attribute with the anonymized serial.
func SerialHash(serial string) slog.Attr {
	return slog.String(KeySerialHash, AnonymizeSerial(serial))
}
