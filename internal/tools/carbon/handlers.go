package carbon

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	carbonapi "github.com/cdinu/mcp-energy/internal/carbon"
	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/tools"
)

// missingPostcodeMessage is returned when neither the request nor the
// server configuration supplies a postcode.
const missingPostcodeMessage = "User postcode not found. Please provide a postcode or set the USER_POSTCODE environment variable on the MCP server."

// forecastHoursArg returns the validated forecast window, defaulting
// to 24 hours.
func forecastHoursArg(request mcp.CallToolRequest) (carbonapi.ForecastHours, error) {
	raw := tools.StringArg(request, "forecastHours")
	if raw == "" {
		return carbonapi.Forecast24h, nil
	}
	hours := carbonapi.ForecastHours(raw)
	if !hours.Valid() {
		return "", fmt.Errorf("invalid forecastHours %q: must be 24 or 48", raw)
	}
	return hours, nil
}

// handleCurrentIntensity handles the current_carbon_intensity_for_postcode tool
func handleCurrentIntensity(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	raw, outward, err := tools.PostcodeArg(request, "postcode", sc.Config().UserPostcode)
	if err != nil {
		return nil, err
	}
	if outward == "" {
		return mcp.NewToolResultText(missingPostcodeMessage), nil
	}

	region, err := sc.CarbonClient().CurrentForPostcode(ctx, outward)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch carbon intensity data: %w", err)
	}

	return mcp.NewToolResultText(renderCurrentIntensity(raw, outward, region)), nil
}

// handleForecastForPostcode handles the carbon_intensity_forecast_for_postcode tool
func handleForecastForPostcode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	from, err := tools.DatetimeArg(request, "fromDatetime")
	if err != nil {
		return nil, err
	}
	hours, err := forecastHoursArg(request)
	if err != nil {
		return nil, err
	}

	// Postcode is optional here; without one the forecast is national.
	raw, outward, err := tools.PostcodeArg(request, "postcode", "")
	if err != nil {
		return nil, err
	}

	if outward != "" {
		region, err := sc.CarbonClient().ForecastForPostcode(ctx, from, hours, outward)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch carbon intensity forecast: %w", err)
		}
		return mcp.NewToolResultText(renderRegionalForecast(raw, outward, from, hours, region)), nil
	}

	periods, err := sc.CarbonClient().ForecastNational(ctx, from, hours)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch carbon intensity forecast: %w", err)
	}
	return mcp.NewToolResultText(renderNationalForecastInline(from, hours, periods)), nil
}

// handleForecastNational handles the carbon_intensity_forecast_national tool
func handleForecastNational(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	from, err := tools.DatetimeArg(request, "fromDatetime")
	if err != nil {
		return nil, err
	}
	hours, err := forecastHoursArg(request)
	if err != nil {
		return nil, err
	}

	format := tools.StringArg(request, "format")
	if format == "" {
		format = "table"
	}
	if format != "list" && format != "table" {
		return nil, fmt.Errorf("invalid format %q: must be list or table", format)
	}

	periods, err := sc.CarbonClient().ForecastNational(ctx, from, hours)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch carbon intensity forecast: %w", err)
	}

	return mcp.NewToolResultText(renderNationalForecast(from, hours, format, periods)), nil
}

// handleGenerationMix handles the current_generation_mix tool
func handleGenerationMix(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	period, err := sc.CarbonClient().CurrentGeneration(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generation mix data: %w", err)
	}

	return mcp.NewToolResultText(renderGenerationMix(period)), nil
}
