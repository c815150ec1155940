package orb

import (
	"fmt"
	"time"
)

// NetworkType is the network interface type a record was measured on.
type NetworkType int

const (
	NetworkTypeUnknown  NetworkType = 0
	NetworkTypeWiFi     NetworkType = 1
	NetworkTypeEthernet NetworkType = 2
	NetworkTypeOther    NetworkType = 3
)

// String returns a human-readable name for the network type.
func (t NetworkType) String() string {
	switch t {
	case NetworkTypeWiFi:
		return "wifi"
	case NetworkTypeEthernet:
		return "ethernet"
	case NetworkTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// NetworkState is the speed test load state during a measurement
// interval.
type NetworkState int

const (
	NetworkStateUnknown NetworkState = 0
	NetworkStateIdle    NetworkState = 1
	NetworkStateLoaded  NetworkState = 2
)

// String returns a human-readable name for the network state.
func (s NetworkState) String() string {
	switch s {
	case NetworkStateIdle:
		return "idle"
	case NetworkStateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// LocationSource indicates how a record's geographic fields were
// derived.
type LocationSource int

const (
	LocationSourceUnknown LocationSource = 0
	LocationSourceGeoIP   LocationSource = 1
)

// String returns a human-readable name for the location source.
func (s LocationSource) String() string {
	if s == LocationSourceGeoIP {
		return "geoip"
	}
	return "unknown"
}

// BaseRecord holds the identifying and dimension fields shared by every
// dataset family.
//
// Fields the device considers identifiable (orb_name, device_name,
// network_name, public_ip, latitude, longitude) are masked or coarsened
// server-side unless the device was configured with identifiable=true.
// They are therefore always pointer-typed here: absent on the wire
// means nil, never an empty string or zero coordinate.
type BaseRecord struct {
	// OrbID is the Orb sensor identifier. Always present.
	OrbID string `json:"orb_id"`

	// OrbName is the sensor's friendly name. Identifiable; may be absent.
	OrbName *string `json:"orb_name,omitempty"`

	// DeviceName is the hostname of the device running the sensor.
	// Identifiable; may be absent.
	DeviceName *string `json:"device_name,omitempty"`

	// OrbVersion is the semantic version of the collecting sensor.
	OrbVersion string `json:"orb_version"`

	// Timestamp is the record time in epoch milliseconds. Always
	// present; non-decreasing within one dataset as delivered.
	Timestamp int64 `json:"timestamp"`

	// NetworkType is the interface type during the interval.
	NetworkType *NetworkType `json:"network_type,omitempty"`

	// NetworkState is the speed test load state during the interval.
	NetworkState *NetworkState `json:"network_state,omitempty"`

	// CountryCode is the geocoded 2-letter ISO country code.
	CountryCode *string `json:"country_code,omitempty"`

	// CityName is the geocoded city name.
	CityName *string `json:"city_name,omitempty"`

	// ISPName is the ISP name from the GeoIP lookup.
	ISPName *string `json:"isp_name,omitempty"`

	// PublicIP is the sensor's public IP address. Identifiable; may be
	// absent.
	PublicIP *string `json:"public_ip,omitempty"`

	// Latitude is the sensor location latitude. Identifiable; may be
	// absent or coarsened.
	Latitude *float64 `json:"latitude,omitempty"`

	// Longitude is the sensor location longitude. Identifiable; may be
	// absent or coarsened.
	Longitude *float64 `json:"longitude,omitempty"`

	// LocationSource indicates how the location fields were derived.
	LocationSource *LocationSource `json:"location_source,omitempty"`
}

// Time returns the record timestamp as a time.Time in UTC.
func (r BaseRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// validate checks the fields every dataset row must carry.
func (r BaseRecord) validate() error {
	if r.OrbID == "" {
		return fmt.Errorf("%w: orb_id", errMissingField)
	}
	if r.Timestamp == 0 {
		return fmt.Errorf("%w: timestamp", errMissingField)
	}
	return nil
}

// Scores1mRecord is one row of the scores_1m dataset.
type Scores1mRecord struct {
	BaseRecord

	// ScoreVersion is the semantic version of the scoring methodology.
	ScoreVersion *string `json:"score_version,omitempty"`

	// OrbScore is the overall Orb Score for the interval (0-100).
	OrbScore *float64 `json:"orb_score,omitempty"`

	// ResponsivenessScore is the responsiveness component (0-100).
	ResponsivenessScore *float64 `json:"responsiveness_score,omitempty"`

	// ReliabilityScore is the reliability component (0-100).
	ReliabilityScore *float64 `json:"reliability_score,omitempty"`

	// SpeedScore is the speed (bandwidth) component (0-100).
	SpeedScore *float64 `json:"speed_score,omitempty"`

	// SpeedAgeMs is the age of the speed sample used, in milliseconds.
	SpeedAgeMs *int64 `json:"speed_age_ms,omitempty"`

	// LagAvgUs is the average lag over the interval, in microseconds.
	LagAvgUs *float64 `json:"lag_avg_us,omitempty"`

	// DownloadAvgKbps is the average content download speed in Kbps.
	DownloadAvgKbps *int64 `json:"download_avg_kbps,omitempty"`

	// UploadAvgKbps is the average content upload speed in Kbps.
	UploadAvgKbps *int64 `json:"upload_avg_kbps,omitempty"`

	// UnresponsiveMs is time spent unresponsive, in milliseconds.
	UnresponsiveMs *float64 `json:"unresponsive_ms,omitempty"`

	// MeasuredMs is time spent actively measuring, in milliseconds.
	MeasuredMs *float64 `json:"measured_ms,omitempty"`

	// LagCount is the number of lag samples included.
	LagCount *int64 `json:"lag_count,omitempty"`

	// SpeedCount is the number of speed samples included.
	SpeedCount *int64 `json:"speed_count,omitempty"`
}

// ResponsivenessRecord is one row of the responsiveness_1s,
// responsiveness_15s, or responsiveness_1m datasets.
type ResponsivenessRecord struct {
	BaseRecord

	// NetworkName is the network name (SSID) if available.
	// Identifiable; may be absent.
	NetworkName *string `json:"network_name,omitempty"`

	LagAvgUs         *int64   `json:"lag_avg_us,omitempty"`
	LatencyAvgUs     *int64   `json:"latency_avg_us,omitempty"`
	JitterAvgUs      *int64   `json:"jitter_avg_us,omitempty"`
	LatencyCount     *float64 `json:"latency_count,omitempty"`
	LatencyLostCount *int64   `json:"latency_lost_count,omitempty"`
	PacketLossPct    *float64 `json:"packet_loss_pct,omitempty"`
	LagCount         *int64   `json:"lag_count,omitempty"`

	// Router-scoped variants of the measures above, taken against the
	// local gateway rather than the public internet.
	RouterLagAvgUs         *int64   `json:"router_lag_avg_us,omitempty"`
	RouterLatencyAvgUs     *int64   `json:"router_latency_avg_us,omitempty"`
	RouterJitterAvgUs      *int64   `json:"router_jitter_avg_us,omitempty"`
	RouterLatencyCount     *float64 `json:"router_latency_count,omitempty"`
	RouterLatencyLostCount *int64   `json:"router_latency_lost_count,omitempty"`
	RouterPacketLossPct    *float64 `json:"router_packet_loss_pct,omitempty"`
	RouterLagCount         *int64   `json:"router_lag_count,omitempty"`

	// Pingers is the CSV list of active pingers.
	Pingers *string `json:"pingers,omitempty"`
}

// SpeedRecord is one row of the speed_results dataset.
type SpeedRecord struct {
	BaseRecord

	// NetworkName is the network name (SSID) if available.
	// Identifiable; may be absent.
	NetworkName *string `json:"network_name,omitempty"`

	// DownloadKbps is the measured download speed in Kbps.
	DownloadKbps *int64 `json:"download_kbps,omitempty"`

	// UploadKbps is the measured upload speed in Kbps.
	UploadKbps *int64 `json:"upload_kbps,omitempty"`

	// SpeedTestEngine is the testing engine (0=orb, 1=iperf).
	SpeedTestEngine *int64 `json:"speed_test_engine,omitempty"`

	// SpeedTestServer is the server URL or identifier.
	SpeedTestServer *string `json:"speed_test_server,omitempty"`
}

// WebResponsivenessRecord is one row of the web_responsiveness_results
// dataset.
type WebResponsivenessRecord struct {
	BaseRecord

	// NetworkName is the network name (SSID) if available.
	// Identifiable; may be absent.
	NetworkName *string `json:"network_name,omitempty"`

	// TTFBUs is the time to first byte loading a web page, in
	// microseconds.
	TTFBUs *int64 `json:"ttfb_us,omitempty"`

	// DNSUs is the DNS resolver response time in microseconds.
	DNSUs *int64 `json:"dns_us,omitempty"`

	// WebURL is the URL endpoint used for the web test.
	WebURL *string `json:"web_url,omitempty"`
}
