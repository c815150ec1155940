// Package orb provides a client SDK for the Orb Local Analytics API,
// the HTTP endpoint exposed by Orb network-monitoring sensors for
// polling telemetry datasets.
//
// The client wraps the dataset polling endpoints of a local Orb device,
// decodes JSON and NDJSON payloads, and retries transient connection
// failures with exponential backoff. It is designed as an SDK-first
// library: configuration happens programmatically via the functional
// options pattern, and every network operation takes a context for
// cancellation and deadline control.
//
// # Quick Start
//
// Create a client and fetch the latest scores:
//
//	client, err := orb.New(orb.WithCallerID("my-collector"))
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	defer client.Close()
//
//	records, err := client.Scores1m(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// # Configuration
//
// The client uses the functional options pattern for configuration:
//
//	client, err := orb.New(
//	    orb.WithBaseURL("http://192.168.1.50:7080"),
//	    orb.WithCallerID("my-collector"),
//	    orb.WithTimeout(10 * time.Second),
//	    orb.WithRetry(5, 500 * time.Millisecond),
//	)
//
// # Caller IDs
//
// The Orb device tracks delivery progress per caller ID. The first
// request with a new caller ID returns the device's retained record
// buffer; subsequent requests with the same caller ID return only
// records retained since the last successful poll. Two independent
// consumers should therefore use two distinct caller IDs. If no caller
// ID is configured, the client generates a random one at construction,
// which means a fresh process starts from the device's current buffer.
//
// # Records
//
// Dataset operations return records as [Record] values in the order the
// device delivered them. Typed models with per-record validation are
// available as a separate, opt-in layer: see [DecodeScores1m],
// [DecodeResponsiveness], [DecodeSpeedResults], and
// [DecodeWebResponsiveness]. A malformed record is reported
// individually as a [RecordError] and never aborts the rest of a batch.
//
// # Errors
//
// Failures surface as typed errors usable with [errors.As]:
//
//   - [APIError]: the device responded with a non-2xx status, or the
//     response body could not be decoded. Never retried.
//   - [ConnectionError]: the device could not be reached after
//     exhausting retries, or the context was cancelled mid-call.
//
// Both carry a structured detail map for programmatic handling.
package orb
