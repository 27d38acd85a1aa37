package carbon

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carbonapi "github.com/cdinu/mcp-energy/internal/carbon"
	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/server"
	"github.com/cdinu/mcp-energy/internal/tools/carbon/testdata"
	"github.com/cdinu/mcp-energy/internal/validate"
)

func newTestContext(t *testing.T, client carbonapi.Client, userPostcode string) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(t.Context(),
		server.WithCarbonClient(client),
		server.WithLogger(logging.NewLogger(io.Discard, "error", "text")),
		server.WithUserPostcode(userPostcode),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleCurrentIntensity(t *testing.T) {
	var gotOutward string
	mock := &testdata.MockCarbonClient{
		CurrentForPostcodeFunc: func(ctx context.Context, outward string) (*carbonapi.Region, error) {
			gotOutward = outward
			forecast := 150
			return &carbonapi.Region{
				ShortName: "North West England",
				Data: []carbonapi.Period{{
					From:      "2025-05-01T00:30Z",
					To:        "2025-05-01T01:00Z",
					Intensity: carbonapi.Intensity{Forecast: &forecast, Index: "high"},
				}},
			}, nil
		},
	}
	sc := newTestContext(t, mock, "")

	result, err := handleCurrentIntensity(context.Background(), newRequest(map[string]any{"postcode": "m1 1ae"}), sc)
	require.NoError(t, err)

	assert.Equal(t, "M1", gotOutward)
	text := resultText(t, result)
	assert.Contains(t, text, "Carbon intensity for m1 1ae (outward code: M1, North West England)")
	assert.Contains(t, text, "150 gCO2/kWh (high level)")
}

func TestHandleCurrentIntensity_FallsBackToConfiguredPostcode(t *testing.T) {
	mock := &testdata.MockCarbonClient{
		CurrentForPostcodeFunc: func(ctx context.Context, outward string) (*carbonapi.Region, error) {
			assert.Equal(t, "SW1A", outward)
			return &carbonapi.Region{ShortName: "London"}, nil
		},
	}
	sc := newTestContext(t, mock, "SW1A 1AA")

	_, err := handleCurrentIntensity(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
}

func TestHandleCurrentIntensity_MissingPostcode(t *testing.T) {
	sc := newTestContext(t, &testdata.MockCarbonClient{}, "")

	result, err := handleCurrentIntensity(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "User postcode not found")
	assert.False(t, result.IsError)
}

func TestHandleCurrentIntensity_InvalidPostcode(t *testing.T) {
	sc := newTestContext(t, &testdata.MockCarbonClient{}, "")

	_, err := handleCurrentIntensity(context.Background(), newRequest(map[string]any{"postcode": "12345"}), sc)
	assert.ErrorIs(t, err, validate.ErrInvalidPostcode)
}

func TestHandleForecastForPostcode_Regional(t *testing.T) {
	mock := &testdata.MockCarbonClient{
		ForecastForPostcodeFunc: func(ctx context.Context, from time.Time, hours carbonapi.ForecastHours, outward string) (*carbonapi.Region, error) {
			assert.Equal(t, carbonapi.Forecast48h, hours)
			assert.Equal(t, "SW1A", outward)
			assert.Equal(t, time.Date(2025, 5, 1, 1, 0, 0, 0, time.UTC), from.UTC())
			return &carbonapi.Region{ShortName: "London"}, nil
		},
	}
	sc := newTestContext(t, mock, "")

	result, err := handleForecastForPostcode(context.Background(), newRequest(map[string]any{
		"fromDatetime":  "2025-05-01T01:00Z",
		"forecastHours": "48",
		"postcode":      "SW1A 1AA",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Carbon intensity forecast for SW1A 1AA")
}

func TestHandleForecastForPostcode_NationalWithoutPostcode(t *testing.T) {
	mock := &testdata.MockCarbonClient{
		ForecastNationalFunc: func(ctx context.Context, from time.Time, hours carbonapi.ForecastHours) ([]carbonapi.Period, error) {
			assert.Equal(t, carbonapi.Forecast24h, hours)
			return nil, nil
		},
	}
	sc := newTestContext(t, mock, "")

	result, err := handleForecastForPostcode(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "**National** carbon intensity forecast")
}

func TestHandleForecastForPostcode_InvalidHours(t *testing.T) {
	sc := newTestContext(t, &testdata.MockCarbonClient{}, "")

	_, err := handleForecastForPostcode(context.Background(), newRequest(map[string]any{"forecastHours": "12"}), sc)
	assert.ErrorContains(t, err, "must be 24 or 48")
}

func TestHandleForecastNational_InvalidFormat(t *testing.T) {
	sc := newTestContext(t, &testdata.MockCarbonClient{}, "")

	_, err := handleForecastNational(context.Background(), newRequest(map[string]any{"format": "csv"}), sc)
	assert.ErrorContains(t, err, "must be list or table")
}

func TestHandleForecastNational_DefaultsToTable(t *testing.T) {
	mock := &testdata.MockCarbonClient{
		ForecastNationalFunc: func(ctx context.Context, from time.Time, hours carbonapi.ForecastHours) ([]carbonapi.Period, error) {
			return []carbonapi.Period{{From: "a", To: "b"}}, nil
		},
	}
	sc := newTestContext(t, mock, "")

	result, err := handleForecastNational(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "| # | From | To |")
}

func TestHandleGenerationMix_UpstreamError(t *testing.T) {
	mock := &testdata.MockCarbonClient{
		CurrentGenerationFunc: func(ctx context.Context) (*carbonapi.Period, error) {
			return nil, assert.AnError
		},
	}
	sc := newTestContext(t, mock, "")

	_, err := handleGenerationMix(context.Background(), newRequest(nil), sc)
	assert.ErrorContains(t, err, "failed to fetch generation mix data")
}
