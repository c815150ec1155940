package orb

import (
	"fmt"
)

// SDKError is implemented by every error type raised by this package.
//
// It plays the role of a shared base kind: callers that do not care
// which specific failure occurred can match it with [errors.As] and
// still get a human-readable message plus a structured detail map
// sufficient for programmatic handling without string parsing.
//
// The concrete types are [APIError], [ConnectionError], and
// [RecordError].
type SDKError interface {
	error

	// Details returns structured context about the failure, such as
	// the request URL, dataset name, or HTTP status code. Never nil.
	Details() map[string]any
}

// APIError indicates that the Orb device responded with an error
// status, or that a successful response body could not be decoded.
//
// API errors are terminal: the request reached the device and the
// device answered, so the client never retries them.
type APIError struct {
	// Message is the human-readable description of the failure.
	Message string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Body is the decoded response body when it parsed as JSON, or a
	// map with a single "raw" key holding the body text otherwise.
	Body map[string]any

	details map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Details returns the structured detail map. The status code is always
// present under "status_code".
func (e *APIError) Details() map[string]any {
	return e.details
}

// ConnectionError indicates that a request could not reach the Orb
// device, or timed out, after exhausting the configured retries. It
// also reports context cancellation mid-call.
type ConnectionError struct {
	// Message is the human-readable description of the failure.
	Message string

	// Cause is the last underlying transport failure.
	Cause error

	details map[string]any
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, so errors.Is can match
// context.Canceled, context.DeadlineExceeded, or net errors wrapped
// inside.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Details returns the structured detail map. The last cause is present
// under "cause" when one exists.
func (e *ConnectionError) Details() map[string]any {
	return e.details
}

// RecordError reports a single record that failed typed validation.
//
// Record decoding is applied per element: one malformed record inside a
// batch yields one RecordError while the remaining records decode
// normally.
type RecordError struct {
	// Index is the position of the failed record within the batch, in
	// the order the device delivered it.
	Index int

	// Err is the underlying validation or decoding failure.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying validation failure.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Details returns the structured detail map, with the record's batch
// index under "index".
func (e *RecordError) Details() map[string]any {
	return map[string]any{
		"index": e.Index,
		"cause": e.Err.Error(),
	}
}

// newAPIError builds an APIError for a response from the device.
func newAPIError(message string, statusCode int, body map[string]any, details map[string]any) *APIError {
	if details == nil {
		details = map[string]any{}
	}
	details["status_code"] = statusCode
	return &APIError{
		Message:    message,
		StatusCode: statusCode,
		Body:       body,
		details:    details,
	}
}

// newConnectionError builds a ConnectionError wrapping the last
// underlying transport failure.
func newConnectionError(message string, cause error, details map[string]any) *ConnectionError {
	if details == nil {
		details = map[string]any{}
	}
	if cause != nil {
		details["cause"] = cause.Error()
	}
	return &ConnectionError{
		Message: message,
		Cause:   cause,
		details: details,
	}
}
