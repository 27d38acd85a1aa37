package heatpump

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/tools"
)

// RegisterHeatpumpTools registers all heat-pump tools with the MCP server
func RegisterHeatpumpTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// heatpump_energy_consumption tool
	consumptionTool := mcp.NewTool("heatpump_energy_consumption",
		mcp.WithDescription("Get the heat pump's energy consumption (electricity, environmental yield, heat generated) for a date range"),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Start date in YYYY-MM-DD format"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("End date in YYYY-MM-DD format"),
		),
		mcp.WithString("scale",
			mcp.Required(),
			mcp.Description("Data granularity"),
			mcp.Enum("hourly", "daily", "monthly"),
		),
	)
	s.AddTool(consumptionTool, tools.Instrument("heatpump_energy_consumption", handleConsumption, sc))

	// heatpump_advanced_diagnostics tool
	diagnosticsTool := mcp.NewTool("heatpump_advanced_diagnostics",
		mcp.WithDescription("Get advanced diagnostics of the heat pump: temperatures, pressures, pump and compressor status, performance counters"),
	)
	s.AddTool(diagnosticsTool, tools.Instrument("heatpump_advanced_diagnostics", handleDiagnostics, sc))

	// heatpump_topology tool
	topologyTool := mcp.NewTool("heatpump_topology",
		mcp.WithDescription("Get the heat pump system topology: all connected devices and their identifying information"),
	)
	s.AddTool(topologyTool, tools.Instrument("heatpump_topology", handleTopology, sc))

	// heatpump_settings tool
	settingsTool := mcp.NewTool("heatpump_settings",
		mcp.WithDescription("Get the current heat pump settings: operation modes, temperature targets, overrides and boost"),
	)
	s.AddTool(settingsTool, tools.Instrument("heatpump_settings", handleSettings, sc))

	// heatpump_state tool
	stateTool := mcp.NewTool("heatpump_state",
		mcp.WithDescription("Get the current heat pump system state: operating parameters, temperatures and component status"),
	)
	s.AddTool(stateTool, tools.Instrument("heatpump_state", handleState, sc))

	return nil
}
