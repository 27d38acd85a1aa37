package carbon

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/tools"
)

// RegisterCarbonTools registers all carbon intensity tools with the MCP server
func RegisterCarbonTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// current_carbon_intensity_for_postcode tool
	currentTool := mcp.NewTool("current_carbon_intensity_for_postcode",
		mcp.WithDescription("Get the current UK grid carbon intensity and generation mix for a postcode"),
		mcp.WithString("postcode",
			mcp.Description("UK postcode (optional, falls back to the configured user postcode)"),
		),
	)
	s.AddTool(currentTool, tools.Instrument("current_carbon_intensity_for_postcode", handleCurrentIntensity, sc))

	// carbon_intensity_forecast_for_postcode tool
	forecastPostcodeTool := mcp.NewTool("carbon_intensity_forecast_for_postcode",
		mcp.WithDescription("UK grid carbon intensity forecast for a postcode. Returns national data when no postcode is given."),
		mcp.WithString("fromDatetime",
			mcp.Description("Starting datetime in ISO 8601 format (e.g. 2025-05-01T01:00Z). Defaults to now."),
		),
		mcp.WithString("forecastHours",
			mcp.Description("Forecast window in hours"),
			mcp.Enum("24", "48"),
		),
		mcp.WithString("postcode",
			mcp.Description("UK postcode (optional, national forecast when omitted)"),
		),
	)
	s.AddTool(forecastPostcodeTool, tools.Instrument("carbon_intensity_forecast_for_postcode", handleForecastForPostcode, sc))

	// carbon_intensity_forecast_national tool
	forecastNationalTool := mcp.NewTool("carbon_intensity_forecast_national",
		mcp.WithDescription("UK national grid carbon intensity forecast as a list or markdown table"),
		mcp.WithString("fromDatetime",
			mcp.Description("Starting datetime in ISO 8601 format (e.g. 2025-05-01T01:00Z). Defaults to now."),
		),
		mcp.WithString("forecastHours",
			mcp.Description("Forecast window in hours"),
			mcp.Enum("24", "48"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: table)"),
			mcp.Enum("list", "table"),
		),
	)
	s.AddTool(forecastNationalTool, tools.Instrument("carbon_intensity_forecast_national", handleForecastNational, sc))

	// current_generation_mix tool
	generationTool := mcp.NewTool("current_generation_mix",
		mcp.WithDescription("Get the current UK national electricity generation mix by fuel type"),
	)
	s.AddTool(generationTool, tools.Instrument("current_generation_mix", handleGenerationMix, sc))

	return nil
}
