package config

import (
	orb "github.com/orbtools/orb-go"
)

// BuildOptions converts a parsed [Config] into SDK client options.
//
// Only fields the user actually set produce options, so SDK defaults
// apply to everything else. The returned slice can be extended before
// being passed to [orb.New]:
//
//	opts := config.BuildOptions(cfg)
//	opts = append(opts, orb.WithLogger(logger))
//	client, err := orb.New(opts...)
func BuildOptions(cfg *Config) []orb.Option {
	opts := []orb.Option{
		orb.WithBaseURL(cfg.BaseURL),
		orb.WithTimeout(cfg.Timeout.Duration()),
	}

	if cfg.CallerID != "" {
		opts = append(opts, orb.WithCallerID(cfg.CallerID))
	}

	if cfg.MaxRetries != nil {
		opts = append(opts, orb.WithRetry(*cfg.MaxRetries, cfg.RetryDelay.Duration()))
	} else {
		opts = append(opts, orb.WithRetry(3, cfg.RetryDelay.Duration()))
	}

	if len(cfg.Headers) > 0 {
		opts = append(opts, orb.WithHeaders(mapToKeyValuePairs(cfg.Headers)...))
	}

	return opts
}

// mapToKeyValuePairs flattens a header map into the variadic key-value
// form [orb.WithHeaders] expects.
func mapToKeyValuePairs(m map[string]string) []string {
	pairs := make([]string, 0, len(m)*2)
	for k, v := range m {
		pairs = append(pairs, k, v)
	}
	return pairs
}
