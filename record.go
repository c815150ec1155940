package orb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Record is one raw dataset row as delivered by the device.
//
// Records preserve every field the device sent, including fields this
// client has no typed model for. Numeric values are [json.Number] so
// that epoch-millisecond timestamps survive decoding without float
// precision loss. Apply one of the Decode functions ([DecodeScores1m],
// [DecodeResponsiveness], [DecodeSpeedResults],
// [DecodeWebResponsiveness]) to obtain typed, validated models.
type Record map[string]any

// decodeJSONBody decodes a response body in "json" format: a single
// JSON array of objects. An empty or whitespace-only body decodes to
// zero records.
func decodeJSONBody(body []byte) ([]Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode JSON array: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// decodeJSONLBody decodes a response body in "jsonl" format: one JSON
// object per line. Blank and whitespace-only lines are skipped, so a
// body consisting only of whitespace decodes to zero records.
func decodeJSONLBody(body []byte) ([]Record, error) {
	records := []Record{}

	for i, line := range strings.Split(string(body), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode JSONL line %d: %w", i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// decodeBody dispatches on the response format.
func decodeBody(body []byte, format Format) ([]Record, error) {
	if format == FormatJSONL {
		return decodeJSONLBody(body)
	}
	return decodeJSONBody(body)
}

// validatable is satisfied by typed record models that can check their
// own required fields after decoding.
type validatable interface {
	validate() error
}

// decodeRecord converts one raw record into a typed model via a JSON
// round trip, then checks required fields. json.Number values re-encode
// as their exact literals, so integer fields decode without loss.
func decodeRecord[T validatable](rec Record) (T, error) {
	var out T

	raw, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("malformed record: %w", err)
	}
	if err := out.validate(); err != nil {
		return out, err
	}
	return out, nil
}

// decodeBatch validates a batch of raw records element by element.
// Failures are collected per record; one malformed record never aborts
// the rest of the batch.
func decodeBatch[T validatable](records []Record) ([]T, []RecordError) {
	out := make([]T, 0, len(records))
	var failed []RecordError

	for i, rec := range records {
		typed, err := decodeRecord[T](rec)
		if err != nil {
			failed = append(failed, RecordError{Index: i, Err: err})
			continue
		}
		out = append(out, typed)
	}

	return out, failed
}

// DecodeScores1m validates raw records from the scores_1m dataset into
// typed [Scores1mRecord] models.
//
// Validation is applied per record: the first return value holds every
// record that decoded successfully, in delivery order, and the second
// holds one [RecordError] per record that did not. Both may be
// non-empty for the same batch.
func DecodeScores1m(records []Record) ([]Scores1mRecord, []RecordError) {
	return decodeBatch[Scores1mRecord](records)
}

// DecodeResponsiveness validates raw records from any of the
// responsiveness datasets (1s, 15s, 1m) into typed
// [ResponsivenessRecord] models. Failure handling matches
// [DecodeScores1m].
func DecodeResponsiveness(records []Record) ([]ResponsivenessRecord, []RecordError) {
	return decodeBatch[ResponsivenessRecord](records)
}

// DecodeSpeedResults validates raw records from the speed_results
// dataset into typed [SpeedRecord] models. Failure handling matches
// [DecodeScores1m].
func DecodeSpeedResults(records []Record) ([]SpeedRecord, []RecordError) {
	return decodeBatch[SpeedRecord](records)
}

// DecodeWebResponsiveness validates raw records from the
// web_responsiveness_results dataset into typed
// [WebResponsivenessRecord] models. Failure handling matches
// [DecodeScores1m].
func DecodeWebResponsiveness(records []Record) ([]WebResponsivenessRecord, []RecordError) {
	return decodeBatch[WebResponsivenessRecord](records)
}

// errMissingField is wrapped by validation failures for absent required
// fields.
var errMissingField = errors.New("missing required field")
