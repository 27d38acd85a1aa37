package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cdinu/mcp-energy/internal/carbon"
	"github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/observability"
	"github.com/cdinu/mcp-energy/internal/server"
	carbontools "github.com/cdinu/mcp-energy/internal/tools/carbon"
	heatpumptools "github.com/cdinu/mcp-energy/internal/tools/heatpump"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// defaultHTTPTimeout bounds requests to the upstream energy APIs.
const defaultHTTPTimeout = 30 * time.Second

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Logging options
		logLevel  string
		logFormat string
		debugMode bool

		// Upstream API options
		carbonAPIURL   string
		heatpumpAPIURL string
		heatpumpToken  string
		httpTimeout    time.Duration

		// Tool defaults
		userPostcode   string
		heatpumpSerial string

		// HTTP hardening
		allowedOrigins string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP energy server",
		Long: `Start the MCP energy server and listen for MCP protocol messages.

The server exposes tools for UK carbon intensity (current, forecast and
generation mix, regional by postcode or national) and, when configured,
heat pump telemetry (consumption, diagnostics, topology, settings, state).

Heat pump tools require HEATPUMP_API_URL and HEATPUMP_TOKEN; the default
postcode and serial number come from USER_POSTCODE and HEATPUMP_SERIAL.
A .env file in the working directory is loaded if present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env before reading the environment. A missing file is fine.
			if err := godotenv.Load(); err == nil {
				log.Printf("Loaded configuration from .env")
			}

			config := ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				LogLevel:        logLevel,
				LogFormat:       logFormat,
				DebugMode:       debugMode,
				CarbonAPIURL:    carbonAPIURL,
				HeatpumpAPIURL:  heatpumpAPIURL,
				HeatpumpToken:   heatpumpToken,
				HTTPTimeout:     httpTimeout,
				UserPostcode:    userPostcode,
				HeatpumpSerial:  heatpumpSerial,
				AllowedOrigins:  allowedOrigins,
			}

			// Env vars only apply for flags not explicitly set by the user.
			loadServeEnvVars(cmd, &config)

			// Security warning: CLI token flags may be visible in process listings
			if cmd.Flags().Changed("heatpump-token") {
				log.Printf("WARNING: heat pump token provided via CLI flag - token may be visible in process listings (ps aux)")
				log.Printf("         For better security, use the %s environment variable instead", envHeatpumpToken)
			}

			if debugMode && !cmd.Flags().Changed("log-level") {
				config.LogLevel = "debug"
			}

			if err := config.validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Logging flags
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Upstream API flags
	cmd.Flags().StringVar(&carbonAPIURL, "carbon-api-url", carbon.DefaultBaseURL, "Base URL of the Carbon Intensity API (can also be set via CARBON_API_URL env var)")
	cmd.Flags().StringVar(&heatpumpAPIURL, "heatpump-api-url", "", "Base URL of the heat pump vendor API (can also be set via HEATPUMP_API_URL env var)")
	cmd.Flags().StringVar(&heatpumpToken, "heatpump-token", "", "Bearer token for the heat pump vendor API (can also be set via HEATPUMP_TOKEN env var)")
	cmd.Flags().DurationVar(&httpTimeout, "http-timeout", defaultHTTPTimeout, "Timeout for upstream API requests (can also be set via MCP_ENERGY_HTTP_TIMEOUT env var)")

	// Tool default flags
	cmd.Flags().StringVar(&userPostcode, "postcode", "", "Default UK postcode for carbon intensity lookups (can also be set via USER_POSTCODE env var)")
	cmd.Flags().StringVar(&heatpumpSerial, "heatpump-serial", "", "Heat pump system serial number (can also be set via HEATPUMP_SERIAL env var)")

	// HTTP hardening flags
	cmd.Flags().StringVar(&allowedOrigins, "allowed-origins", "", "Comma-separated list of allowed CORS origins for HTTP transports (can also be set via MCP_ENERGY_ALLOWED_ORIGINS env var)")

	return cmd
}

// runServe starts the MCP server with the given configuration.
func runServe(config ServeConfig) error {
	// In stdio mode stdout carries the MCP protocol, so logs go to stderr.
	logger := logging.NewLogger(os.Stderr, config.LogLevel, config.LogFormat)

	metrics := observability.NewMetrics()

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	carbonClient := carbon.NewClient(config.CarbonAPIURL, timeout, logger, metrics)

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.UserPostcode = config.UserPostcode
	serverConfig.HeatpumpSerial = config.HeatpumpSerial
	serverConfig.LogLevel = config.LogLevel
	serverConfig.LogFormat = config.LogFormat

	serverContextOptions := []server.Option{
		server.WithCarbonClient(carbonClient),
		server.WithLogger(logger),
		server.WithConfig(serverConfig),
		server.WithMetrics(metrics),
	}

	// Heat pump support is optional: without a vendor URL and token the
	// tools still register but answer with setup guidance.
	if config.HeatpumpAPIURL != "" && config.HeatpumpToken != "" {
		heatpumpClient := heatpump.NewClient(config.HeatpumpAPIURL, config.HeatpumpToken, timeout, logger, metrics)
		serverContextOptions = append(serverContextOptions, server.WithHeatpumpClient(heatpumpClient))
		logger.Info("heat pump support enabled", "api_url", config.HeatpumpAPIURL)
	} else {
		logger.Info("heat pump support not configured, heat pump tools will return setup guidance")
	}

	serverContext, err := server.NewServerContext(shutdownCtx, serverContextOptions...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if shutdownErr := serverContext.Shutdown(); shutdownErr != nil {
			logger.Error("error during server context shutdown", logging.Err(shutdownErr))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer(serverConfig.ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tool categories
	if err := carbontools.RegisterCarbonTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register carbon tools: %w", err)
	}
	if err := heatpumptools.RegisterHeatpumpTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register heat pump tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with MCP communication
		return runStdioServer(mcpSrv)
	case transportSSE:
		fmt.Printf("Starting MCP energy server with %s transport...\n", config.Transport)
		return runSSEServer(mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint, shutdownCtx, config.DebugMode)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP energy server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(mcpSrv, shutdownCtx, serverContext, config)
	default:
		return fmt.Errorf("unsupported transport type: %s", config.Transport)
	}
}
