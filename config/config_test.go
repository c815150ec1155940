package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "http://localhost:7080" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout.Duration() != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout.Duration())
	}
	if cfg.RetryDelay.Duration() != time.Second {
		t.Errorf("RetryDelay = %v, want 1s", cfg.RetryDelay.Duration())
	}
	if cfg.MaxRetries != nil {
		t.Errorf("MaxRetries = %v, want nil (SDK default applies)", *cfg.MaxRetries)
	}
	if cfg.Tail.Format != "json" {
		t.Errorf("Tail.Format = %q, want json", cfg.Tail.Format)
	}
	if cfg.Tail.Interval.Duration() != 60*time.Second {
		t.Errorf("Tail.Interval = %v, want 60s", cfg.Tail.Interval.Duration())
	}
}

func TestParse_Full(t *testing.T) {
	yaml := `
base_url: http://192.168.1.50:7080
caller_id: archiver
timeout: 10s
max_retries: 5
retry_delay: 500ms
headers:
  Authorization: Bearer abc
tail:
  dataset: responsiveness_1s
  format: jsonl
  interval: 5s
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "http://192.168.1.50:7080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CallerID != "archiver" {
		t.Errorf("CallerID = %q, want archiver", cfg.CallerID)
	}
	if cfg.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout.Duration())
	}
	if cfg.MaxRetries == nil || *cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %v, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay.Duration() != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.RetryDelay.Duration())
	}
	if cfg.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("Headers[Authorization] = %q", cfg.Headers["Authorization"])
	}
	if cfg.Tail.Dataset != "responsiveness_1s" {
		t.Errorf("Tail.Dataset = %q", cfg.Tail.Dataset)
	}
	if cfg.Tail.Format != "jsonl" {
		t.Errorf("Tail.Format = %q, want jsonl", cfg.Tail.Format)
	}
	if cfg.Tail.Interval.Duration() != 5*time.Second {
		t.Errorf("Tail.Interval = %v, want 5s", cfg.Tail.Interval.Duration())
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("base_url: [unclosed")); err == nil {
		t.Error("Parse() error = nil, want YAML error")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("timeout: fast"))
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("Parse() error = %v, want invalid duration", err)
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad scheme", "base_url: ftp://device"},
		{"negative retries", "max_retries: -1"},
		{"unknown tail dataset", "tail:\n  dataset: scores_5m"},
		{"bad tail format", "tail:\n  format: xml"},
		{"tail interval too short", "tail:\n  interval: 100ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() error = nil, want validation error")
			}
		})
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("ORB_TEST_TOKEN", "secret-token")
	t.Setenv("ORB_TEST_HOST", "device.local")

	yaml := `
base_url: http://${ORB_TEST_HOST}:7080
caller_id: ${ORB_TEST_CALLER:-fallback-id}
headers:
  Authorization: Bearer ${ORB_TEST_TOKEN}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BaseURL != "http://device.local:7080" {
		t.Errorf("BaseURL = %q, want expanded host", cfg.BaseURL)
	}
	if cfg.CallerID != "fallback-id" {
		t.Errorf("CallerID = %q, want default from ${VAR:-default}", cfg.CallerID)
	}
	if cfg.Headers["Authorization"] != "Bearer secret-token" {
		t.Errorf("Headers[Authorization] = %q, want expanded token", cfg.Headers["Authorization"])
	}
}

func TestExpandEnvValue(t *testing.T) {
	t.Setenv("ORB_TEST_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"${ORB_TEST_SET}", "value"},
		{"pre-${ORB_TEST_SET}-post", "pre-value-post"},
		{"${ORB_TEST_UNSET}", ""},
		{"${ORB_TEST_UNSET:-def}", "def"},
		{"${ORB_TEST_SET:-def}", "value"},
		{"a $5 literal", "a $5 literal"},
		{"${unterminated", "${unterminated"},
	}

	for _, tt := range tests {
		if got := expandEnvValue(tt.in); got != tt.want {
			t.Errorf("expandEnvValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/orb.yaml"); err == nil {
		t.Error("Load() error = nil, want read error")
	}
}
