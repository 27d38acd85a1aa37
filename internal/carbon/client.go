package carbon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cdinu/mcp-energy/internal/logging"
	"github.com/cdinu/mcp-energy/internal/observability"
)

// DefaultBaseURL is the public Carbon Intensity API endpoint.
const DefaultBaseURL = "https://api.carbonintensity.org.uk"

// apiName labels this client's requests in logs and metrics.
const apiName = "carbonintensity"

// timestampLayout is the instant format the intensity endpoints accept.
const timestampLayout = time.RFC3339

// Client fetches carbon intensity data. Implementations must be safe
// for concurrent use.
type Client interface {
	// CurrentForPostcode returns the current regional intensity for an
	// outward code.
	CurrentForPostcode(ctx context.Context, outward string) (*Region, error)

	// ForecastForPostcode returns the regional forecast for the given
	// window starting at from.
	ForecastForPostcode(ctx context.Context, from time.Time, hours ForecastHours, outward string) (*Region, error)

	// ForecastNational returns the national forecast for the given
	// window starting at from.
	ForecastNational(ctx context.Context, from time.Time, hours ForecastHours) ([]Period, error)

	// CurrentGeneration returns the current national generation mix.
	CurrentGeneration(ctx context.Context) (*Period, error)
}

// apiClient implements Client against the HTTP API.
type apiClient struct {
	http    *resty.Client
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewClient creates a Carbon Intensity API client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &apiClient{
		http:    httpClient,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *apiClient) CurrentForPostcode(ctx context.Context, outward string) (*Region, error) {
	var out regionalListResponse
	endpoint := fmt.Sprintf("/regional/postcode/%s", outward)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("no intensity data for outward code %s", outward)
	}
	return &out.Data[0], nil
}

func (c *apiClient) ForecastForPostcode(ctx context.Context, from time.Time, hours ForecastHours, outward string) (*Region, error) {
	var out regionalResponse
	endpoint := fmt.Sprintf("/regional/intensity/%s/fw%sh/postcode/%s",
		from.Format(timestampLayout), hours, outward)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *apiClient) ForecastNational(ctx context.Context, from time.Time, hours ForecastHours) ([]Period, error) {
	var out nationalResponse
	endpoint := fmt.Sprintf("/intensity/%s/fw%sh", from.Format(timestampLayout), hours)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *apiClient) CurrentGeneration(ctx context.Context) (*Period, error) {
	var out generationResponse
	if err := c.get(ctx, "/generation", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// get performs one GET against the API, decoding the JSON body into
// out and recording request metrics.
func (c *apiClient) get(ctx context.Context, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		Get(endpoint)
	elapsed := time.Since(start)

	outcome := observability.OutcomeSuccess
	if err != nil || resp.IsError() {
		outcome = observability.OutcomeError
	}
	c.metrics.RecordUpstreamRequest(apiName, outcome, elapsed.Seconds())

	if err != nil {
		c.logger.Warn("carbon intensity request failed",
			logging.API(apiName), logging.Operation(endpoint), logging.Err(err))
		return fmt.Errorf("carbon intensity request: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("carbon intensity API error",
			logging.API(apiName), logging.Operation(endpoint),
			slog.Int("status", resp.StatusCode()))
		return fmt.Errorf("carbon intensity API: status %d", resp.StatusCode())
	}

	c.logger.Debug("carbon intensity request",
		logging.API(apiName), logging.Operation(endpoint), logging.Duration(elapsed))
	return nil
}
