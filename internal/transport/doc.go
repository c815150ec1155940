// Package transport wraps net/http for the Orb SDK.
//
// It owns the pooled HTTP client, per-request timeouts, and response
// body size limits. It performs no retries and raises no typed SDK
// errors; classification of outcomes belongs to the orb package.
package transport
