// Package server provides the core infrastructure for the MCP energy
// server, including dependency injection, configuration management,
// and lifecycle handling.
//
// The ServerContext type encapsulates the upstream API clients, logger
// and configuration needed by the MCP tool handlers, and is assembled
// through functional options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithCarbonClient(carbonClient),
//		server.WithHeatpumpClient(heatpumpClient),
//		server.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
package server
