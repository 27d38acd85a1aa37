package server

import (
	"errors"
	"log/slog"

	"github.com/cdinu/mcp-energy/internal/carbon"
	"github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/observability"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithCarbonClient sets the Carbon Intensity API client.
func WithCarbonClient(client carbon.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingCarbonClient
		}
		sc.carbonClient = client
		return nil
	}
}

// WithHeatpumpClient sets the heat-pump vendor API client. A nil
// client is allowed; heat-pump tools are simply not registered.
func WithHeatpumpClient(client heatpump.Client) Option {
	return func(sc *ServerContext) error {
		sc.heatpumpClient = client
		return nil
	}
}

// WithLogger sets the structured logger for the ServerContext.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithMetrics sets the Prometheus metrics for the ServerContext.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(sc *ServerContext) error {
		sc.metrics = metrics
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithUserPostcode sets the default postcode applied when tool calls
// omit one.
func WithUserPostcode(postcode string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.UserPostcode = postcode
		return nil
	}
}

// WithHeatpumpSerial sets the default heat-pump system serial applied
// when tool calls omit one.
func WithHeatpumpSerial(serial string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.HeatpumpSerial = serial
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingCarbonClient = errors.New("carbon intensity client is required")
	ErrMissingLogger       = errors.New("logger is required")
	ErrMissingConfig       = errors.New("configuration is required")
	ErrServerShutdown      = errors.New("server context has been shutdown")
)
