package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBodySize caps dataset response bodies. The device retains
// a bounded record buffer (100 records by default), so a well-behaved
// response stays far below this; the cap protects against a
// misconfigured base URL pointing at something that streams.
const maxResponseBodySize = 8 << 20 // 8MB

// connection pooling limits; a client typically talks to a single
// local device, so the per-host numbers are what matter
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 4
	defaultMaxConnsPerHost     = 4
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of a single GET issued by [Client].
//
// Err is set when the request failed at the connection level (dial,
// DNS, reset, timeout) or the body could not be read; the caller
// decides whether that is retryable. A non-2xx status is not an Err.
type Response struct {
	// Body contains the response body, capped at 8MB.
	Body []byte

	// StatusCode is the HTTP status code. Zero if the request failed
	// before a response arrived.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Err contains any connection-level failure. nil means the request
	// completed, whatever the status code says.
	Err error
}

// Client is a thin GET-only HTTP wrapper for polling an Orb device.
//
// The zero Client is not usable; construct with [New]. A Client may be
// shared by concurrent requests; the underlying http.Client handles
// connection reuse. Per-request timeouts are applied via context, not a
// global client timeout, so one slow call never shortens another.
type Client struct {
	httpClient *http.Client
}

// New creates a polling [Client].
//
// If base is nil, a pooled http.Client suited for a single local device
// is built. Passing a custom http.Client lets callers supply their own
// transport (proxies, TLS config, test doubles); its Timeout field is
// ignored in favor of per-request contexts.
func New(base *http.Client) *Client {
	if base == nil {
		base = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		}
	}
	return &Client{httpClient: base}
}

// Get performs a single GET and returns a structured [Response].
//
// The timeout is applied via context cancellation on top of whatever
// deadline ctx already carries; a zero timeout means ctx alone governs
// the request. Headers are set verbatim. Get always returns a
// Response; connection-level failures are captured in the Err field.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Err:     fmt.Errorf("build request: %w", err),
		}
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Err:     fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Err:        fmt.Errorf("read response body: %w", err),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close releases idle connections in the client's pool.
//
// Safe to call multiple times and on a nil receiver. After Close the
// client remains usable; new connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
