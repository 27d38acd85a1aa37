package heatpump

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/observability"
	"github.com/cdinu/mcp-energy/internal/telemetry"
)

// apiName labels this client's requests in logs and metrics.
const apiName = "heatpump"

// dateLayout is the calendar-date format the consumption endpoint
// accepts for its range parameters.
const dateLayout = "2006-01-02"

// Client fetches heat-pump data from the vendor API. Implementations
// must be safe for concurrent use.
type Client interface {
	// Consumption returns energy consumption per system component for
	// the date range at the given granularity.
	Consumption(ctx context.Context, serial string, scale Scale, from, to time.Time) ([]SystemConsumption, error)

	// Diagnostics returns advanced diagnostics as schema-less records,
	// one per device.
	Diagnostics(ctx context.Context, serial string) ([]*telemetry.Record, error)

	// Topology returns the system topology.
	Topology(ctx context.Context, serial string) (*Topology, error)

	// Settings returns each device's current settings.
	Settings(ctx context.Context, serial string) ([]SystemSettings, error)

	// State returns the live system state as schema-less records, one
	// per device.
	State(ctx context.Context, serial string) ([]*telemetry.Record, error)
}

// apiClient implements Client against the vendor HTTP API.
type apiClient struct {
	http    *resty.Client
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a vendor API client authenticating with the given
// bearer token. metrics may be nil.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetAuthToken(token).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &apiClient{
		http:    httpClient,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *apiClient) Consumption(ctx context.Context, serial string, scale Scale, from, to time.Time) ([]SystemConsumption, error) {
	var out []SystemConsumption
	err := c.get(ctx, fmt.Sprintf("/v1/systems/%s/consumption", serial), map[string]string{
		"scale": string(scale),
		"from":  from.Format(dateLayout),
		"to":    to.Format(dateLayout),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) Diagnostics(ctx context.Context, serial string) ([]*telemetry.Record, error) {
	body, err := c.getRaw(ctx, fmt.Sprintf("/v1/systems/%s/diagnostics", serial), map[string]string{
		"includeMetadata": "true",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(body)
}

func (c *apiClient) Topology(ctx context.Context, serial string) (*Topology, error) {
	var out Topology
	if err := c.get(ctx, fmt.Sprintf("/v1/systems/%s/topology", serial), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) Settings(ctx context.Context, serial string) ([]SystemSettings, error) {
	var out []SystemSettings
	err := c.get(ctx, fmt.Sprintf("/v1/systems/%s/settings", serial), map[string]string{
		"includeMetadata": "true",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) State(ctx context.Context, serial string) ([]*telemetry.Record, error) {
	body, err := c.getRaw(ctx, fmt.Sprintf("/v1/systems/%s/state", serial), map[string]string{
		"includeMetadata": "true",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(body)
}

// get performs one GET against the API, decoding the JSON body into out.
func (c *apiClient) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	body, err := c.getRaw(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("heatpump API: decode %s: %w", endpoint, err)
	}
	return nil
}

// getRaw performs one GET and returns the raw body, recording request
// metrics.
func (c *apiClient) getRaw(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	start := time.Now()
	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(endpoint)
	elapsed := time.Since(start)

	outcome := observability.OutcomeSuccess
	if err != nil || resp.IsError() {
		outcome = observability.OutcomeError
	}
	c.metrics.RecordUpstreamRequest(apiName, outcome, elapsed.Seconds())

	if err != nil {
		c.logger.Warn("heatpump request failed",
			logging.API(apiName), logging.Operation(endpoint), logging.Err(err))
		return nil, fmt.Errorf("heatpump API request: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("heatpump API error",
			logging.API(apiName), logging.Operation(endpoint),
			slog.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("heatpump API: status %d", resp.StatusCode())
	}

	c.logger.Debug("heatpump request",
		logging.API(apiName), logging.Operation(endpoint), logging.Duration(elapsed))
	return resp.Body(), nil
}

// decodeRecords decodes a body that is either a single device object or
// a list of them; firmware versions differ on which they send.
func decodeRecords(body []byte) ([]*telemetry.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []*telemetry.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("heatpump API: decode device records: %w", err)
		}
		return records, nil
	}

	rec := telemetry.NewRecord()
	if err := json.Unmarshal(trimmed, rec); err != nil {
		return nil, fmt.Errorf("heatpump API: decode device record: %w", err)
	}
	return []*telemetry.Record{rec}, nil
}
