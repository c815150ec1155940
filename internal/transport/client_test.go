package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/http/httptrace"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %q, want yes", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"orb_id":"a"}]`))
	}))
	defer server.Close()

	client := New(nil)
	defer client.Close()

	resp := client.Get(context.Background(), server.URL, map[string]string{"X-Test": "yes"}, time.Second)
	if resp.Err != nil {
		t.Fatalf("Get() Err = %v", resp.Err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `[{"orb_id":"a"}]` {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.Latency <= 0 {
		t.Errorf("Latency = %v, want > 0", resp.Latency)
	}
}

func TestClient_Get_ErrorStatusIsNotErr(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer server.Close()

	client := New(nil)
	defer client.Close()

	resp := client.Get(context.Background(), server.URL, nil, time.Second)
	if resp.Err != nil {
		t.Fatalf("Err = %v, want nil for a completed exchange", resp.Err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := New(nil)
	defer client.Close()

	resp := client.Get(context.Background(), server.URL, nil, 20*time.Millisecond)
	if resp.Err == nil {
		t.Fatal("Err = nil, want timeout error")
	}
}

func TestClient_Get_ZeroTimeoutUsesContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := New(nil)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp := client.Get(ctx, server.URL, nil, 0)
	if resp.Err == nil {
		t.Fatal("Err = nil, want context deadline error")
	}
}

// TestClient_ConnectionReuse verifies that sequential requests to the
// same host reuse pooled connections.
func TestClient_ConnectionReuse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(nil)
	defer client.Close()

	var reusedCount int
	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Reused {
				reusedCount++
			}
		},
	}

	const numRequests = 5
	for i := 0; i < numRequests; i++ {
		ctx := httptrace.WithClientTrace(context.Background(), trace)
		resp := client.Get(ctx, server.URL, nil, 5*time.Second)
		if resp.Err != nil {
			t.Fatalf("request %d failed: %v", i, resp.Err)
		}
	}

	// all requests after the first should reuse the connection, with
	// some tolerance
	if expectedMinReuse := numRequests - 2; reusedCount < expectedMinReuse {
		t.Errorf("expected at least %d reused connections, got %d out of %d requests",
			expectedMinReuse, reusedCount, numRequests)
	}
}

func TestClient_Close(t *testing.T) {
	client := New(nil)

	// idempotent, and safe on nil
	client.Close()
	client.Close()

	var nilClient *Client
	nilClient.Close()
}

func TestClient_Close_RemainsUsable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(nil)

	resp := client.Get(context.Background(), server.URL, nil, time.Second)
	if resp.Err != nil {
		t.Fatalf("Get() Err = %v", resp.Err)
	}

	client.Close()

	resp = client.Get(context.Background(), server.URL, nil, time.Second)
	if resp.Err != nil {
		t.Errorf("Get() after Close Err = %v", resp.Err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
}

func TestClient_CustomHTTPClient(t *testing.T) {
	var used bool
	hc := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			used = true
			return httptest.NewRecorder().Result(), nil
		}),
	}

	client := New(hc)
	defer client.Close()

	resp := client.Get(context.Background(), "http://device.invalid", nil, time.Second)
	if resp.Err != nil {
		t.Fatalf("Get() Err = %v", resp.Err)
	}
	if !used {
		t.Error("custom transport was not used")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
