package orb

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
	if client.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", client.Timeout())
	}
	if client.MaxRetries() != 3 {
		t.Errorf("MaxRetries() = %d, want 3", client.MaxRetries())
	}
	if client.RetryDelay() != time.Second {
		t.Errorf("RetryDelay() = %v, want 1s", client.RetryDelay())
	}
	if !strings.HasPrefix(client.CallerID(), "orb-go-") {
		t.Errorf("CallerID() = %q, want a generated orb-go- id", client.CallerID())
	}
}

func TestNew_GeneratedCallerIDsDiffer(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	b, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	if a.CallerID() == b.CallerID() {
		t.Errorf("two clients share generated caller id %q", a.CallerID())
	}
}

func TestWithBaseURL(t *testing.T) {
	client, err := New(WithBaseURL("http://192.168.1.50:7080/"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	// trailing slash stripped so URL building stays clean
	if client.BaseURL() != "http://192.168.1.50:7080" {
		t.Errorf("BaseURL() = %q, want trailing slash stripped", client.BaseURL())
	}
}

func TestWithBaseURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "localhost:7080"},
		{"wrong scheme", "ftp://localhost"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(WithBaseURL(tt.url)); err == nil {
				t.Errorf("New(WithBaseURL(%q)) error = nil, want error", tt.url)
			}
		})
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty caller id", WithCallerID("")},
		{"zero timeout", WithTimeout(0)},
		{"negative timeout", WithTimeout(-time.Second)},
		{"negative retries", WithRetry(-1, time.Second)},
		{"zero retry delay", WithRetry(3, 0)},
		{"odd headers", WithHeaders("Authorization")},
		{"nil http client", WithHTTPClient(nil)},
		{"nil logger", WithLogger(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Error("New() error = nil, want validation error")
			}
		})
	}
}

func TestWithRetry_ZeroRetriesAllowed(t *testing.T) {
	client, err := New(WithRetry(0, time.Second))
	if err != nil {
		t.Fatalf("New(WithRetry(0, 1s)) error = %v", err)
	}
	defer client.Close()

	if client.MaxRetries() != 0 {
		t.Errorf("MaxRetries() = %d, want 0", client.MaxRetries())
	}
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	client, err := New(WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()
}

func TestRequestOptionValidation(t *testing.T) {
	cfg := &requestConfig{callerID: "default"}

	if err := WithRequestCallerID("")(cfg); err == nil {
		t.Error("WithRequestCallerID(\"\") error = nil, want error")
	}
	if err := WithRequestHeaders("odd")(cfg); err == nil {
		t.Error("WithRequestHeaders with odd args error = nil, want error")
	}

	if err := WithRequestCallerID("override")(cfg); err != nil {
		t.Fatalf("WithRequestCallerID() error = %v", err)
	}
	if cfg.callerID != "override" {
		t.Errorf("callerID = %q, want override", cfg.callerID)
	}
}
