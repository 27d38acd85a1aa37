package carbon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/observability"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := logging.NewLogger(io.Discard, "error", "text")
	return NewClient(srv.URL, 2*time.Second, logger, observability.NewMetricsForTesting())
}

func TestCurrentForPostcode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/regional/postcode/SW1A", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{
			"regionid": 13,
			"shortname": "London",
			"postcode": "SW1A",
			"data": [{
				"from": "2025-05-01T00:30Z",
				"to": "2025-05-01T01:00Z",
				"intensity": {"forecast": 112, "index": "moderate"},
				"generationmix": [
					{"fuel": "wind", "perc": 42.3},
					{"fuel": "coal", "perc": 0}
				]
			}]
		}]}`))
	})

	region, err := client.CurrentForPostcode(context.Background(), "SW1A")
	require.NoError(t, err)

	assert.Equal(t, "London", region.ShortName)
	require.Len(t, region.Data, 1)
	require.NotNil(t, region.Data[0].Intensity.Forecast)
	assert.Equal(t, 112, *region.Data[0].Intensity.Forecast)
	assert.Equal(t, "moderate", region.Data[0].Intensity.Index)
	assert.Len(t, region.Data[0].GenerationMix, 2)
}

func TestCurrentForPostcode_EmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.CurrentForPostcode(context.Background(), "ZZ99")
	assert.ErrorContains(t, err, "no intensity data")
}

func TestForecastNational(t *testing.T) {
	from := time.Date(2025, 5, 1, 1, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intensity/2025-05-01T01:00:00Z/fw24h", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"from": "2025-05-01T01:00Z", "to": "2025-05-01T01:30Z", "intensity": {"forecast": 90, "index": "low"}},
			{"from": "2025-05-01T01:30Z", "to": "2025-05-01T02:00Z", "intensity": {"forecast": 95, "index": "low"}}
		]}`))
	})

	periods, err := client.ForecastNational(context.Background(), from, Forecast24h)
	require.NoError(t, err)
	assert.Len(t, periods, 2)
}

func TestForecastForPostcode(t *testing.T) {
	from := time.Date(2025, 5, 1, 1, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/regional/intensity/2025-05-01T01:00:00Z/fw48h/postcode/M1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{
			"regionid": 10,
			"shortname": "North West England",
			"data": [{"from": "2025-05-01T01:00Z", "to": "2025-05-01T01:30Z", "intensity": {"forecast": 130, "index": "moderate"}}]
		}}`))
	})

	region, err := client.ForecastForPostcode(context.Background(), from, Forecast48h, "M1")
	require.NoError(t, err)
	assert.Equal(t, "North West England", region.ShortName)
	assert.Len(t, region.Data, 1)
}

func TestCurrentGeneration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generation", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{
			"from": "2025-05-01T00:30Z",
			"to": "2025-05-01T01:00Z",
			"generationmix": [{"fuel": "nuclear", "perc": 17.6}]
		}}`))
	})

	period, err := client.CurrentGeneration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01T00:30Z", period.From)
	require.Len(t, period.GenerationMix, 1)
	assert.Equal(t, "nuclear", period.GenerationMix[0].Fuel)
}

func TestGet_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.CurrentGeneration(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestForecastHours_Valid(t *testing.T) {
	assert.True(t, Forecast24h.Valid())
	assert.True(t, Forecast48h.Valid())
	assert.False(t, ForecastHours("12").Valid())
	assert.False(t, ForecastHours("").Valid())
}
