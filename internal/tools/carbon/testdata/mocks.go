// Package testdata provides mock implementations for carbon tool tests.
package testdata

import (
	"context"
	"errors"
	"time"

	"github.com/cdinu/mcp-energy/internal/carbon"
)

// MockCarbonClient implements carbon.Client with overridable function
// fields. Unset fields return ErrNotImplemented.
type MockCarbonClient struct {
	CurrentForPostcodeFunc  func(ctx context.Context, outward string) (*carbon.Region, error)
	ForecastForPostcodeFunc func(ctx context.Context, from time.Time, hours carbon.ForecastHours, outward string) (*carbon.Region, error)
	ForecastNationalFunc    func(ctx context.Context, from time.Time, hours carbon.ForecastHours) ([]carbon.Period, error)
	CurrentGenerationFunc   func(ctx context.Context) (*carbon.Period, error)
}

// ErrNotImplemented is returned by mock methods without a configured function.
var ErrNotImplemented = errors.New("mock: not implemented")

func (m *MockCarbonClient) CurrentForPostcode(ctx context.Context, outward string) (*carbon.Region, error) {
	if m.CurrentForPostcodeFunc != nil {
		return m.CurrentForPostcodeFunc(ctx, outward)
	}
	return nil, ErrNotImplemented
}

func (m *MockCarbonClient) ForecastForPostcode(ctx context.Context, from time.Time, hours carbon.ForecastHours, outward string) (*carbon.Region, error) {
	if m.ForecastForPostcodeFunc != nil {
		return m.ForecastForPostcodeFunc(ctx, from, hours, outward)
	}
	return nil, ErrNotImplemented
}

func (m *MockCarbonClient) ForecastNational(ctx context.Context, from time.Time, hours carbon.ForecastHours) ([]carbon.Period, error) {
	if m.ForecastNationalFunc != nil {
		return m.ForecastNationalFunc(ctx, from, hours)
	}
	return nil, ErrNotImplemented
}

func (m *MockCarbonClient) CurrentGeneration(ctx context.Context) (*carbon.Period, error) {
	if m.CurrentGenerationFunc != nil {
		return m.CurrentGenerationFunc(ctx)
	}
	return nil, ErrNotImplemented
}
