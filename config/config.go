// Package config provides YAML configuration parsing for the orb CLI.
//
// This package enables running the SDK from a standalone binary with a
// configuration file, as an alternative to the programmatic approach.
//
// Example configuration:
//
//	base_url: http://localhost:7080
//	caller_id: my-collector
//	timeout: 10s
//	max_retries: 3
//	retry_delay: 1s
//
//	headers:
//	  Authorization: Bearer ${ORB_PROXY_TOKEN}
//
//	tail:
//	  dataset: scores_1m
//	  format: json
//	  interval: 60s
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	orb "github.com/orbtools/orb-go"
)

// minTailInterval is the minimum allowed polling interval for tail
// mode. This prevents accidental hammering of the device.
const minTailInterval = 1 * time.Second

// Config is the root configuration structure for the orb CLI.
//
// It maps directly to the YAML configuration file structure. Use [Load]
// or [Parse] to create a Config from YAML.
type Config struct {
	// BaseURL is the address of the Orb device's local API.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}.
	// Defaults to http://localhost:7080.
	BaseURL string `yaml:"base_url"`

	// CallerID identifies this consumer to the device's delivery
	// tracking. Supports environment variable substitution.
	// If empty, a random id is generated per process.
	CallerID string `yaml:"caller_id"`

	// Timeout is the per-attempt request timeout.
	// Accepts duration strings like "10s", "1m", "500ms". Defaults to 30s.
	Timeout Duration `yaml:"timeout"`

	// MaxRetries is the number of additional attempts after a
	// connection failure. Defaults to 3. Explicit 0 disables retries.
	MaxRetries *int `yaml:"max_retries"`

	// RetryDelay is the base delay before the first retry; it doubles
	// on each subsequent retry. Defaults to 1s.
	RetryDelay Duration `yaml:"retry_delay"`

	// Headers are static HTTP headers sent with every request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// Tail configures the `orb tail` command.
	Tail TailConfig `yaml:"tail"`
}

// TailConfig configures continuous dataset polling for the tail
// command.
type TailConfig struct {
	// Dataset is the dataset name to poll.
	Dataset string `yaml:"dataset"`

	// Format is the response encoding, "json" or "jsonl". Defaults to
	// json.
	Format string `yaml:"format"`

	// Interval is the time between polls. Defaults to 60s, minimum 1s.
	Interval Duration `yaml:"interval"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses a configuration file, applying defaults and
// validating the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applying defaults and
// validating the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset fields with the SDK defaults.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = orb.DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(30 * time.Second)
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = Duration(1 * time.Second)
	}
	if c.Tail.Format == "" {
		c.Tail.Format = string(orb.FormatJSON)
	}
	if c.Tail.Interval == 0 {
		c.Tail.Interval = Duration(60 * time.Second)
	}
}

// expandEnv substitutes ${VAR} and ${VAR:-default} references in the
// fields that commonly carry secrets or host names.
func (c *Config) expandEnv() {
	c.BaseURL = expandEnvValue(c.BaseURL)
	c.CallerID = expandEnvValue(c.CallerID)
	for k, v := range c.Headers {
		c.Headers[k] = expandEnvValue(v)
	}
}

// Validate checks the configuration for values the SDK would reject.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url %q must have an http:// or https:// scheme", c.BaseURL)
	}

	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}
	if c.Timeout.Duration() < 0 {
		return errors.New("timeout cannot be negative")
	}
	if c.RetryDelay.Duration() < 0 {
		return errors.New("retry_delay cannot be negative")
	}

	if c.Tail.Dataset != "" && !orb.Dataset(c.Tail.Dataset).Valid() {
		return fmt.Errorf("unknown tail dataset %q (known: %v)", c.Tail.Dataset, orb.Datasets())
	}
	if !orb.Format(c.Tail.Format).Valid() {
		return fmt.Errorf("tail format %q must be %q or %q", c.Tail.Format, orb.FormatJSON, orb.FormatJSONL)
	}
	if c.Tail.Interval.Duration() < minTailInterval {
		return fmt.Errorf("tail interval must be at least %s", minTailInterval)
	}

	return nil
}

// expandEnvValue substitutes ${VAR} and ${VAR:-default} references.
// Text without a complete ${...} reference passes through untouched, so
// literal dollar signs survive.
func expandEnvValue(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var out strings.Builder
	for {
		start := strings.Index(s, "${")
		if start == -1 {
			out.WriteString(s)
			return out.String()
		}
		end := strings.Index(s[start:], "}")
		if end == -1 {
			out.WriteString(s)
			return out.String()
		}
		end += start

		out.WriteString(s[:start])
		ref := s[start+2 : end]

		name, def := ref, ""
		hasDefault := false
		if idx := strings.Index(ref, ":-"); idx != -1 {
			name, def = ref[:idx], ref[idx+2:]
			hasDefault = true
		}

		if val, ok := os.LookupEnv(name); ok && val != "" {
			out.WriteString(val)
		} else if hasDefault {
			out.WriteString(def)
		}
		// unset without default expands to empty, matching shell ${VAR}

		s = s[end+1:]
	}
}
