package heatpump

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	heatpumpapi "github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/tools"
)

// Fixed guidance messages for unconfigured deployments. These come
// back as tool text, not error results, so clients relay them to the
// user instead of retrying.
const (
	notConfiguredMessage = "Heat pump support is not configured. Set the HEATPUMP_API_URL and HEATPUMP_TOKEN environment variables on the MCP server."
	missingSerialMessage = "Heat pump serial number not found. Set the HEATPUMP_SERIAL environment variable on the MCP server."
)

// clientAndSerial resolves the vendor client and the configured system
// serial. A non-nil result means the deployment cannot serve heat-pump
// tools and the result should be returned as-is.
func clientAndSerial(sc *server.ServerContext) (heatpumpapi.Client, string, *mcp.CallToolResult) {
	client := sc.HeatpumpClient()
	if client == nil {
		return nil, "", mcp.NewToolResultText(notConfiguredMessage)
	}
	serial := sc.Config().HeatpumpSerial
	if serial == "" {
		return nil, "", mcp.NewToolResultText(missingSerialMessage)
	}
	return client, serial, nil
}

// handleConsumption handles the heatpump_energy_consumption tool
func handleConsumption(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, serial, guidance := clientAndSerial(sc)
	if guidance != nil {
		return guidance, nil
	}

	from, err := tools.DateArg(request, "from")
	if err != nil {
		return nil, err
	}
	to, err := tools.DateArg(request, "to")
	if err != nil {
		return nil, err
	}

	scale := heatpumpapi.Scale(tools.StringArg(request, "scale"))
	if !scale.Valid() {
		return nil, fmt.Errorf("invalid scale %q: must be hourly, daily or monthly", scale)
	}

	systems, err := client.Consumption(ctx, serial, scale, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch energy consumption: %w", err)
	}
	if len(systems) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No consumption data found for the period %s to %s.",
			from.Format("2006-01-02"), to.Format("2006-01-02"))), nil
	}

	// Report the first system when several are returned.
	return mcp.NewToolResultText(renderConsumption(systems[0], from, to, scale)), nil
}

// handleDiagnostics handles the heatpump_advanced_diagnostics tool
func handleDiagnostics(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, serial, guidance := clientAndSerial(sc)
	if guidance != nil {
		return guidance, nil
	}

	records, err := client.Diagnostics(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diagnostics: %w", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No diagnostics data available."), nil
	}

	return mcp.NewToolResultText(renderDiagnostics(records)), nil
}

// handleTopology handles the heatpump_topology tool
func handleTopology(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, serial, guidance := clientAndSerial(sc)
	if guidance != nil {
		return guidance, nil
	}

	topo, err := client.Topology(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topology: %w", err)
	}
	if topo == nil {
		return mcp.NewToolResultText("No topology data available."), nil
	}

	return mcp.NewToolResultText(renderTopology(topo)), nil
}

// handleSettings handles the heatpump_settings tool
func handleSettings(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, serial, guidance := clientAndSerial(sc)
	if guidance != nil {
		return guidance, nil
	}

	settings, err := client.Settings(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	if len(settings) == 0 {
		return mcp.NewToolResultText("No settings data available."), nil
	}

	return mcp.NewToolResultText(renderSettings(settings)), nil
}

// handleState handles the heatpump_state tool
func handleState(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, serial, guidance := clientAndSerial(sc)
	if guidance != nil {
		return guidance, nil
	}

	records, err := client.State(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch system state: %w", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No state data available."), nil
	}

	return mcp.NewToolResultText(renderState(records)), nil
}
