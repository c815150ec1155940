package orb

import "errors"

// requestConfig holds mutable state while a single request is being
// configured.
type requestConfig struct {
	callerID string
	headers  map[string]string
}

// RequestOption is a function that configures a single dataset fetch.
//
// RequestOption follows the same validating functional options pattern
// as [Option], scoped to one call of [Client.FetchDataset] or one of
// the per-dataset convenience methods.
//
// Built-in options: [WithRequestCallerID], [WithRequestHeaders].
type RequestOption func(*requestConfig) error

// WithRequestCallerID overrides the client's default caller id for one
// call.
//
// Use this to drive several independent delivery cursors from one
// client, for example when fanning records out to multiple consumers.
//
// Example:
//
//	records, err := client.Scores1m(ctx,
//	    orb.WithRequestCallerID("archiver"),
//	)
//
// Returns an error if the id is empty.
func WithRequestCallerID(id string) RequestOption {
	return func(cfg *requestConfig) error {
		if id == "" {
			return errors.New("caller id cannot be empty")
		}
		cfg.callerID = id
		return nil
	}
}

// WithRequestHeaders adds HTTP headers to one request, on top of the
// client's static headers. Accepts variadic key-value pairs; the number
// of arguments must be even.
//
// Returns an error if an odd number of arguments is provided.
func WithRequestHeaders(keyValues ...string) RequestOption {
	return func(cfg *requestConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithRequestHeaders requires an even number of arguments (key-value pairs)")
		}
		if cfg.headers == nil {
			cfg.headers = make(map[string]string, len(keyValues)/2)
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}
