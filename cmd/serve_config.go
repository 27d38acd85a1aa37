package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Environment variable names recognised by the serve command. Flags take
// precedence; the environment fills in anything the user did not set.
const (
	envCarbonAPIURL   = "CARBON_API_URL"
	envHeatpumpAPIURL = "HEATPUMP_API_URL"
	envHeatpumpToken  = "HEATPUMP_TOKEN"
	envHeatpumpSerial = "HEATPUMP_SERIAL"
	envUserPostcode   = "USER_POSTCODE"
	envHTTPTimeout    = "MCP_ENERGY_HTTP_TIMEOUT"
	envAllowedOrigins = "MCP_ENERGY_ALLOWED_ORIGINS"
	envLogLevel       = "MCP_ENERGY_LOG_LEVEL"
	envLogFormat      = "MCP_ENERGY_LOG_FORMAT"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Logging
	LogLevel  string
	LogFormat string
	DebugMode bool

	// Upstream API settings
	CarbonAPIURL   string
	HeatpumpAPIURL string
	HeatpumpToken  string
	HTTPTimeout    time.Duration

	// User defaults for the tools
	UserPostcode   string
	HeatpumpSerial string

	// HTTP transport hardening
	AllowedOrigins string
}

// loadEnvIfEmpty loads an environment variable into a string pointer if it's empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// loadServeEnvVars fills config fields from the environment for every flag
// the user did not set explicitly on the command line.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	// The carbon URL flag has a non-empty default, so the env var wins
	// whenever the flag was not set explicitly.
	if !cmd.Flags().Changed("carbon-api-url") {
		if v := os.Getenv(envCarbonAPIURL); v != "" {
			config.CarbonAPIURL = v
		}
	}
	if !cmd.Flags().Changed("heatpump-api-url") {
		loadEnvIfEmpty(&config.HeatpumpAPIURL, envHeatpumpAPIURL)
	}
	if !cmd.Flags().Changed("heatpump-token") {
		loadEnvIfEmpty(&config.HeatpumpToken, envHeatpumpToken)
	}
	if !cmd.Flags().Changed("heatpump-serial") {
		loadEnvIfEmpty(&config.HeatpumpSerial, envHeatpumpSerial)
	}
	if !cmd.Flags().Changed("postcode") {
		loadEnvIfEmpty(&config.UserPostcode, envUserPostcode)
	}
	if !cmd.Flags().Changed("allowed-origins") {
		loadEnvIfEmpty(&config.AllowedOrigins, envAllowedOrigins)
	}
	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv(envLogLevel); v != "" {
			config.LogLevel = v
		}
	}
	if !cmd.Flags().Changed("log-format") {
		if v := os.Getenv(envLogFormat); v != "" {
			config.LogFormat = v
		}
	}
	if !cmd.Flags().Changed("http-timeout") {
		if d, ok := parseDurationEnv(os.Getenv(envHTTPTimeout), envHTTPTimeout); ok {
			config.HTTPTimeout = d
		}
	}
}

// validate checks the parts of the configuration that would otherwise only
// fail deep inside transport setup.
func (c *ServeConfig) validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("invalid transport %q: must be %s, %s or %s",
			c.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}
	if c.HeatpumpAPIURL != "" && c.HeatpumpToken == "" {
		return fmt.Errorf("heat pump API URL is set but no token provided: set %s or --heatpump-token", envHeatpumpToken)
	}
	return nil
}

// parseDurationEnv parses a duration from an environment variable value.
// Returns the parsed duration and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseDurationEnv(value, envName string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s=%q: %v", envName, value, err)
		return 0, false
	}
	return d, true
}
