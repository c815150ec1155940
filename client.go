package orb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/orbtools/orb-go/internal/transport"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.1.0"

const (
	// DefaultBaseURL is the address an Orb device serves its local API
	// on by default.
	DefaultBaseURL = "http://localhost:7080"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second

	// maxRetryInterval bounds a single backoff sleep so pathological
	// retry configurations cannot stall a caller for hours.
	maxRetryInterval = 2 * time.Minute
)

// Client is a client for the local analytics API of one Orb device.
//
// Client is immutable after construction via [New] and safe for
// concurrent use: it holds no mutable state across calls beyond the
// pooled HTTP transport, and each dataset fetch is an independent
// operation. Retries of a single call are sequential; concurrent calls
// for different datasets do not coordinate, matching the device's
// independent per-caller-id delivery tracking.
//
// The typical lifecycle is:
//
//	client, err := orb.New(orb.WithCallerID("my-collector"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	records, err := client.Scores1m(ctx)
type Client struct {
	baseURL    string
	callerID   string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
	logger     *slog.Logger
	transport  *transport.Client
}

// New creates a [Client] with the given options.
//
// All options have sensible defaults:
//   - Base URL: http://localhost:7080
//   - Timeout: 30 seconds per attempt
//   - Retries: 3 additional attempts, 1 second base delay
//   - Caller ID: a random UUID
//
// Returns an error if any option is invalid.
//
// Example:
//
//	client, err := orb.New(
//	    orb.WithBaseURL("http://192.168.1.50:7080"),
//	    orb.WithCallerID("my-collector"),
//	    orb.WithRetry(5, 500*time.Millisecond),
//	)
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:    DefaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		headers:    map[string]string{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	callerID := cfg.callerID
	if callerID == "" {
		callerID = generateCallerID()
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	headers := map[string]string{
		"User-Agent": "orb-go/" + Version,
		"Accept":     "application/json",
	}
	for k, v := range cfg.headers {
		headers[k] = v
	}

	return &Client{
		baseURL:    cfg.baseURL,
		callerID:   callerID,
		timeout:    cfg.timeout,
		maxRetries: cfg.maxRetries,
		retryDelay: cfg.retryDelay,
		headers:    headers,
		logger:     logger,
		transport:  transport.New(cfg.httpClient),
	}, nil
}

// FetchDataset polls one dataset and returns its new records.
//
// The request targets {base_url}/api/v2/datasets/{name}.{format} with
// the caller id as the id query parameter. Records are returned in the
// order the device delivered them; an empty response yields an empty
// slice, not an error.
//
// Connection-level failures are retried with exponential backoff
// (base delay doubling per attempt, no jitter) up to the configured
// number of additional attempts, then surfaced as a [ConnectionError].
// Non-2xx responses are never retried and surface immediately as an
// [APIError] carrying the status code and decoded body. Cancelling ctx
// aborts the in-flight request and any remaining retries.
//
// name is not validated against the known dataset list; polling a name
// the device does not serve yields whatever the device responds,
// typically a 404 [APIError].
func (c *Client) FetchDataset(ctx context.Context, name Dataset, format Format, opts ...RequestOption) ([]Record, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported format %q (want %q or %q)", format, FormatJSON, FormatJSONL)
	}

	reqCfg := &requestConfig{callerID: c.callerID}
	for _, opt := range opts {
		if err := opt(reqCfg); err != nil {
			return nil, err
		}
	}

	target := c.datasetURL(name, format, reqCfg.callerID)
	headers := c.requestHeaders(reqCfg.headers)

	resp, err := c.getWithRetry(ctx, target, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFromResponse(resp, name)
	}

	records, err := decodeBody(resp.Body, format)
	if err != nil {
		return nil, newAPIError(
			fmt.Sprintf("failed to decode %s response: %v", format, err),
			resp.StatusCode,
			map[string]any{"raw": string(resp.Body)},
			map[string]any{"dataset": name.String(), "url": target},
		)
	}

	c.logger.Debug("dataset fetched",
		"dataset", name.String(),
		"format", format.String(),
		"records", len(records),
		"latency_ms", resp.Latency.Milliseconds(),
	)

	return records, nil
}

// getWithRetry issues the GET, retrying connection-level failures.
// A completed HTTP exchange is a success here regardless of status
// code; status classification happens in the caller.
func (c *Client) getWithRetry(ctx context.Context, target string, headers map[string]string) (transport.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryDelay
	bo.RandomizationFactor = 0 // delays must be exactly retryDelay * 2^attempt
	bo.Multiplier = 2
	bo.MaxInterval = maxRetryInterval
	bo.MaxElapsedTime = 0
	bo.Reset()

	var resp transport.Response
	attempt := 0

	operation := func() error {
		resp = c.transport.Get(ctx, target, headers, c.timeout)
		if resp.Err != nil {
			c.logger.Warn("request failed",
				"url", target,
				"attempt", attempt,
				"error", resp.Err.Error(),
			)
			attempt++
			return resp.Err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return transport.Response{}, newConnectionError(
			fmt.Sprintf("request to %s failed: %v", target, err),
			err,
			map[string]any{"url": target, "attempts": attempt},
		)
	}

	return resp, nil
}

// datasetURL builds the polling URL for one dataset.
func (c *Client) datasetURL(name Dataset, format Format, callerID string) string {
	q := url.Values{}
	q.Set("id", callerID)
	return fmt.Sprintf("%s/api/v2/datasets/%s.%s?%s", c.baseURL, name, format, q.Encode())
}

// requestHeaders merges per-request headers over the client defaults.
func (c *Client) requestHeaders(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return c.headers
	}
	merged := make(map[string]string, len(c.headers)+len(extra))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// apiErrorFromResponse turns a non-2xx response into an APIError,
// decoding the body as a JSON error detail object when possible.
func apiErrorFromResponse(resp transport.Response, name Dataset) *APIError {
	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err != nil || body == nil {
		body = map[string]any{"raw": string(resp.Body)}
	}

	reason := "unknown error"
	if msg, ok := body["error"].(string); ok && msg != "" {
		reason = msg
	}

	return newAPIError(
		fmt.Sprintf("HTTP %d: %s", resp.StatusCode, reason),
		resp.StatusCode,
		body,
		map[string]any{"dataset": name.String()},
	)
}

// Scores1m fetches new records from the scores_1m dataset in JSON
// format. It delegates to [Client.FetchDataset]; error conditions are
// identical.
func (c *Client) Scores1m(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetScores1m, FormatJSON, opts...)
}

// Responsiveness1s fetches new records from the responsiveness_1s
// dataset in JSON format.
func (c *Client) Responsiveness1s(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetResponsiveness1s, FormatJSON, opts...)
}

// Responsiveness15s fetches new records from the responsiveness_15s
// dataset in JSON format.
func (c *Client) Responsiveness15s(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetResponsiveness15s, FormatJSON, opts...)
}

// Responsiveness1m fetches new records from the responsiveness_1m
// dataset in JSON format.
func (c *Client) Responsiveness1m(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetResponsiveness1m, FormatJSON, opts...)
}

// SpeedResults fetches new records from the speed_results dataset in
// JSON format.
func (c *Client) SpeedResults(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetSpeedResults, FormatJSON, opts...)
}

// WebResponsivenessResults fetches new records from the
// web_responsiveness_results dataset in JSON format.
func (c *Client) WebResponsivenessResults(ctx context.Context, opts ...RequestOption) ([]Record, error) {
	return c.FetchDataset(ctx, DatasetWebResponsiveness, FormatJSON, opts...)
}

// Close releases the client's idle connections.
//
// Call when the client is no longer needed so connections are released
// deterministically rather than waiting for the idle timeout. Safe to
// call multiple times; the client remains usable afterwards.
func (c *Client) Close() {
	c.transport.Close()
}

// BaseURL returns the configured device base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CallerID returns the default caller id used when a call does not
// override it.
func (c *Client) CallerID() string {
	return c.callerID
}

// Timeout returns the per-attempt request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// MaxRetries returns the number of additional attempts made after a
// connection-level failure.
func (c *Client) MaxRetries() int {
	return c.maxRetries
}

// RetryDelay returns the base delay before the first retry. Each
// subsequent retry doubles it.
func (c *Client) RetryDelay() time.Duration {
	return c.retryDelay
}
