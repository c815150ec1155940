package orb

// Dataset identifies one of the telemetry streams served by an Orb
// device's local API.
//
// Dataset is a string type holding one of the known dataset names.
// Using a string type keeps URLs and logs human-readable while the
// defined constants provide type safety at call sites. The client does
// not reject unknown names itself: polling a name the device does not
// serve surfaces as an [APIError] with the device's status code
// (typically 404).
type Dataset string

const (
	// DatasetScores1m holds Orb Scores aggregated over 1-minute intervals.
	DatasetScores1m Dataset = "scores_1m"

	// DatasetResponsiveness1s holds responsiveness measures at 1-second granularity.
	DatasetResponsiveness1s Dataset = "responsiveness_1s"

	// DatasetResponsiveness15s holds responsiveness measures at 15-second granularity.
	DatasetResponsiveness15s Dataset = "responsiveness_15s"

	// DatasetResponsiveness1m holds responsiveness measures at 1-minute granularity.
	DatasetResponsiveness1m Dataset = "responsiveness_1m"

	// DatasetSpeedResults holds speed test results.
	DatasetSpeedResults Dataset = "speed_results"

	// DatasetWebResponsiveness holds web responsiveness test results.
	DatasetWebResponsiveness Dataset = "web_responsiveness_results"
)

// Datasets lists every dataset name known to this client, in a stable
// order suitable for iteration.
func Datasets() []Dataset {
	return []Dataset{
		DatasetScores1m,
		DatasetResponsiveness1s,
		DatasetResponsiveness15s,
		DatasetResponsiveness1m,
		DatasetSpeedResults,
		DatasetWebResponsiveness,
	}
}

// Valid reports whether d is one of the dataset names known to this
// client. Unknown names may still be passed to [Client.FetchDataset];
// the device decides whether it serves them.
func (d Dataset) Valid() bool {
	switch d {
	case DatasetScores1m,
		DatasetResponsiveness1s,
		DatasetResponsiveness15s,
		DatasetResponsiveness1m,
		DatasetSpeedResults,
		DatasetWebResponsiveness:
		return true
	}
	return false
}

// String returns the dataset name as served by the device.
// This implements the fmt.Stringer interface.
func (d Dataset) String() string {
	return string(d)
}

// Format selects the wire encoding of a dataset response.
type Format string

const (
	// FormatJSON requests the dataset as a single JSON array of objects.
	FormatJSON Format = "json"

	// FormatJSONL requests the dataset as newline-delimited JSON, one
	// object per line.
	FormatJSONL Format = "jsonl"
)

// Valid reports whether f is a supported response format.
func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatJSONL
}

// String returns the format's file extension as used in dataset URLs.
func (f Format) String() string {
	return string(f)
}
