package orb

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	baseURL    string
	callerID   string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option is a function that configures a [Client] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithBaseURL], [WithCallerID], [WithTimeout],
// [WithRetry], [WithHeaders], [WithHTTPClient], [WithLogger].
type Option func(*clientConfig) error

// WithBaseURL sets the address of the Orb device's local API.
//
// The URL must include a scheme (http:// or https://). A trailing slash
// is stripped. Defaults to http://localhost:7080.
//
// Example:
//
//	client, err := orb.New(
//	    orb.WithBaseURL("http://192.168.1.50:7080"),
//	)
func WithBaseURL(rawURL string) Option {
	return func(cfg *clientConfig) error {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.New("base URL must have an http:// or https:// scheme")
		}
		cfg.baseURL = strings.TrimRight(rawURL, "/")
		return nil
	}
}

// WithCallerID sets the default caller id sent with every dataset poll.
//
// The device tracks delivery progress per caller id, so a stable id
// across process restarts gives a contiguous, non-duplicated record
// stream. If not set, a random UUID is generated at construction and
// the first poll of each dataset returns the device's current retained
// buffer.
//
// Returns an error if the id is empty.
func WithCallerID(id string) Option {
	return func(cfg *clientConfig) error {
		if id == "" {
			return errors.New("caller id cannot be empty")
		}
		cfg.callerID = id
		return nil
	}
}

// WithTimeout sets the timeout for a single request attempt.
//
// The timeout covers one HTTP exchange; retries each get a fresh
// timeout. Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRetry configures retry behavior for connection-level failures.
//
// maxRetries is the number of additional attempts after the first
// failure; zero disables retries entirely. delay is the sleep before
// the first retry and doubles on each subsequent one, with no jitter.
// Defaults to 3 retries with a 1 second base delay.
//
// Only connection-level failures (dial, DNS, reset, timeout) are
// retried; HTTP error statuses never are.
//
// Example:
//
//	client, err := orb.New(
//	    orb.WithRetry(5, 500*time.Millisecond),
//	)
//
// Returns an error if maxRetries is negative or delay is not positive.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(cfg *clientConfig) error {
		if maxRetries < 0 {
			return errors.New("max retries cannot be negative")
		}
		if delay <= 0 {
			return errors.New("retry delay must be positive")
		}
		cfg.maxRetries = maxRetries
		cfg.retryDelay = delay
		return nil
	}
}

// WithHeaders adds static HTTP headers to every request.
//
// Use this for devices behind a reverse proxy that requires
// authentication. Accepts variadic key-value pairs; the number of
// arguments must be even. Headers set here override the client's
// defaults (User-Agent, Accept) on key collision.
//
// Example:
//
//	client, err := orb.New(
//	    orb.WithHeaders("Authorization", "Bearer token123"),
//	)
//
// Returns an error if an odd number of arguments is provided.
func WithHeaders(keyValues ...string) Option {
	return func(cfg *clientConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithHTTPClient supplies a custom http.Client for the underlying
// transport.
//
// Use this for proxies, custom TLS configuration, or test doubles. The
// client's Timeout field is ignored; per-attempt timeouts are applied
// via context. If not set, a pooled client suited for polling a single
// local device is built.
//
// Returns an error if the client is nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.httpClient = hc
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the client.
//
// The client logs fetches at debug level and retried failures at warn
// level. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	client, err := orb.New(orb.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// generateCallerID builds the random caller id used when none is
// configured.
func generateCallerID() string {
	return "orb-go-" + uuid.NewString()
}
