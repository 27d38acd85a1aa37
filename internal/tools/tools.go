// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/observability"
	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/validate"
)

// ToolHandler is the signature for MCP tool handler functions that take ServerContext.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

// Instrument wraps a tool handler with structured logging and metrics.
// Handler errors are converted into MCP tool error results, so upstream
// and validation failures reach the client as tool output rather than
// protocol errors.
func Instrument(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		logger := logging.WithTool(sc.Logger(), toolName)

		result, err := handler(ctx, request, sc)
		elapsed := time.Since(start)

		outcome := observability.OutcomeSuccess
		switch {
		case err != nil:
			if errors.Is(err, validate.ErrInvalidPostcode) || errors.Is(err, validate.ErrInvalidInstant) {
				outcome = observability.OutcomeInvalid
			} else {
				outcome = observability.OutcomeError
			}
			logger.Warn("tool call failed",
				logging.Status(logging.StatusError),
				logging.Duration(elapsed),
				logging.Err(err))
			result = mcp.NewToolResultError(err.Error())
		case result != nil && result.IsError:
			outcome = observability.OutcomeError
			logger.Warn("tool call returned error result",
				logging.Status(logging.StatusError),
				logging.Duration(elapsed))
		default:
			logger.Debug("tool call completed",
				logging.Status(logging.StatusSuccess),
				logging.Duration(elapsed))
		}

		sc.Metrics().RecordToolInvocation(toolName, outcome, elapsed.Seconds())
		return result, nil
	}
}
