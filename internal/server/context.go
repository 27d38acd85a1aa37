package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cdinu/mcp-energy/internal/carbon"
	"github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/observability"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and
// lifecycle management.
type ServerContext struct {
	carbonClient   carbon.Client
	heatpumpClient heatpump.Client
	logger         *slog.Logger
	config         *Config
	metrics        *observability.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// CarbonClient returns the Carbon Intensity API client.
func (sc *ServerContext) CarbonClient() carbon.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.carbonClient
}

// HeatpumpClient returns the heat-pump vendor API client, or nil when
// heat-pump support is not configured.
func (sc *ServerContext) HeatpumpClient() heatpump.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.heatpumpClient
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Metrics returns the Prometheus metrics, or nil when metrics are
// disabled.
func (sc *ServerContext) Metrics() *observability.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// Shutdown gracefully shuts down the server context. This cancels the
// context and releases any resources. Calling Shutdown more than once
// is safe.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	return nil
}

// IsShutdown returns true if the server context has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.carbonClient == nil {
		return ErrMissingCarbonClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Defaults applied when tool calls omit the corresponding argument.
	UserPostcode   string `json:"userPostcode,omitempty"`
	HeatpumpSerial string `json:"heatpumpSerial,omitempty"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "mcp-energy",
		Version:    "0.1.0",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
