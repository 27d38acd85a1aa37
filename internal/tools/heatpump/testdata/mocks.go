// Package testdata provides mock implementations for heat-pump tool tests.
package testdata

import (
	"context"
	"errors"
	"time"

	"github.com/cdinu/mcp-energy/internal/heatpump"
	"github.com/cdinu/mcp-energy/internal/telemetry"
)

// MockHeatpumpClient implements heatpump.Client with overridable
// function fields. Unset fields return ErrNotImplemented.
type MockHeatpumpClient struct {
	ConsumptionFunc func(ctx context.Context, serial string, scale heatpump.Scale, from, to time.Time) ([]heatpump.SystemConsumption, error)
	DiagnosticsFunc func(ctx context.Context, serial string) ([]*telemetry.Record, error)
	TopologyFunc    func(ctx context.Context, serial string) (*heatpump.Topology, error)
	SettingsFunc    func(ctx context.Context, serial string) ([]heatpump.SystemSettings, error)
	StateFunc       func(ctx context.Context, serial string) ([]*telemetry.Record, error)
}

// ErrNotImplemented is returned by mock methods without a configured function.
var ErrNotImplemented = errors.New("mock: not implemented")

func (m *MockHeatpumpClient) Consumption(ctx context.Context, serial string, scale heatpump.Scale, from, to time.Time) ([]heatpump.SystemConsumption, error) {
	if m.ConsumptionFunc != nil {
		return m.ConsumptionFunc(ctx, serial, scale, from, to)
	}
	return nil, ErrNotImplemented
}

func (m *MockHeatpumpClient) Diagnostics(ctx context.Context, serial string) ([]*telemetry.Record, error) {
	if m.DiagnosticsFunc != nil {
		return m.DiagnosticsFunc(ctx, serial)
	}
	return nil, ErrNotImplemented
}

func (m *MockHeatpumpClient) Topology(ctx context.Context, serial string) (*heatpump.Topology, error) {
	if m.TopologyFunc != nil {
		return m.TopologyFunc(ctx, serial)
	}
	return nil, ErrNotImplemented
}

func (m *MockHeatpumpClient) Settings(ctx context.Context, serial string) ([]heatpump.SystemSettings, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc(ctx, serial)
	}
	return nil, ErrNotImplemented
}

func (m *MockHeatpumpClient) State(ctx context.Context, serial string) ([]*telemetry.Record, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx, serial)
	}
	return nil, ErrNotImplemented
}
