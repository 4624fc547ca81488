// Package validate checks raw input records against field presence,
// numeric, and range rules, producing either normalized fields or a
// structured rejection. Raw untyped records never cross this boundary.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one raw input row: a flat field-name to value mapping as
// handed over by a syntactic parser (CSV row, JSON object). Not retained
// after validation.
type RawRecord map[string]string

// ReasonCode classifies why a record was rejected.
type ReasonCode string

const (
	ReasonMissingField       ReasonCode = "missing-field"
	ReasonTypeError          ReasonCode = "type-error"
	ReasonOutOfRange         ReasonCode = "out-of-range"
	ReasonMalformedTimestamp ReasonCode = "malformed-timestamp"
)

// Rejection describes one validation failure for one input row.
// Produced per ingestion run, not persisted across runs.
type Rejection struct {
	RowIndex int        `json:"row_index"`
	Reason   ReasonCode `json:"reason_code"`
	Detail   string     `json:"detail"`
}

func (r Rejection) Error() string {
	return fmt.Sprintf("row %d: %s: %s", r.RowIndex, r.Reason, r.Detail)
}

// Fields is the normalized output of a successful validation.
type Fields struct {
	Latitude      float64
	Longitude     float64
	Provider      string
	ProviderKnown bool
	Timestamp     time.Time
	DownloadMbps  float64
	UploadMbps    float64
	LatencyMs     float64
	JitterMs      float64
	PacketLossPct float64
}

// numericRule describes one numeric input field: where to find it, its
// accepted range, whether it must be present, and its default.
type numericRule struct {
	canonical string
	aliases   []string
	min, max  float64
	required  bool
	fallback  float64
}

var numericRules = []numericRule{
	{canonical: "latitude", min: -90, max: 90, required: true},
	{canonical: "longitude", min: -180, max: 180, required: true},
	{canonical: "download", aliases: []string{"download_mbps"}, min: 0, max: 1000, required: true},
	{canonical: "upload", aliases: []string{"upload_mbps"}, min: 0, max: 500, required: true},
	{canonical: "latency", aliases: []string{"latency_ms"}, min: 0, max: 2000, required: true},
	{canonical: "jitter", aliases: []string{"jitter_ms"}, min: 0, max: 500},
	{canonical: "packet_loss", aliases: []string{"packet_loss_pct"}, min: 0, max: 100},
}

// Validator applies the validation rules. Rules run in a fixed order and
// the first failure wins; in Verbose mode all failures are still
// computed and returned for batch diagnostics.
//
// A Validator has no side effects. Now is only consulted for the
// documented absent-timestamp default and is injectable for tests; it
// defaults to time.Now.
type Validator struct {
	Verbose bool

	// KnownProviders, when non-empty, is used to tag (never reject)
	// provider names outside the registry.
	KnownProviders []string

	Now func() time.Time
}

// Validate checks one raw record. On success it returns the normalized
// fields and a nil rejection slice; on failure the fields are nil and
// the slice carries the winning rejection first, followed by any further
// failures when Verbose is set.
func (v *Validator) Validate(raw RawRecord, rowIndex int) (*Fields, []Rejection) {
	var rejections []Rejection
	reject := func(reason ReasonCode, detail string) {
		rejections = append(rejections, Rejection{RowIndex: rowIndex, Reason: reason, Detail: detail})
	}

	// The first rejection is the winning one; later entries exist only
	// for verbose batch diagnostics.
	done := func() []Rejection {
		if v.Verbose {
			return rejections
		}
		return rejections[:1]
	}

	fields := &Fields{}
	parsed := make(map[string]float64)

	// Rule 1: required fields present.
	for _, rule := range numericRules {
		if _, ok := lookup(raw, rule); !ok && rule.required {
			reject(ReasonMissingField, fmt.Sprintf("required field %q is missing", rule.canonical))
		}
	}
	if len(rejections) > 0 && !v.Verbose {
		return nil, done()
	}

	// Rule 2: every present numeric field parses to a real number.
	for _, rule := range numericRules {
		value, ok := lookup(raw, rule)
		if !ok {
			parsed[rule.canonical] = rule.fallback
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			reject(ReasonTypeError, fmt.Sprintf("field %q must be numeric, got %q", rule.canonical, value))
			continue
		}
		parsed[rule.canonical] = f
	}
	if len(rejections) > 0 && !v.Verbose {
		return nil, done()
	}

	// Rule 3: range checks, only for values that parsed.
	for _, rule := range numericRules {
		f, ok := parsed[rule.canonical]
		if !ok {
			continue
		}
		if f < rule.min || f > rule.max {
			reject(ReasonOutOfRange, fmt.Sprintf("field %q value %v outside [%v, %v]", rule.canonical, f, rule.min, rule.max))
		}
	}
	if len(rejections) > 0 && !v.Verbose {
		return nil, done()
	}

	// Rule 4: timestamp, if present, must be ISO-8601. Absent timestamp
	// defaults to ingestion wall-clock time; that default is deliberate,
	// not an error.
	if ts, ok := raw["timestamp"]; ok && strings.TrimSpace(ts) != "" {
		t, err := parseTimestamp(strings.TrimSpace(ts))
		if err != nil {
			reject(ReasonMalformedTimestamp, fmt.Sprintf("field \"timestamp\" value %q is not an ISO-8601 date-time", ts))
		} else {
			fields.Timestamp = t
		}
	} else {
		fields.Timestamp = v.now()
	}
	if len(rejections) > 0 {
		return nil, done()
	}

	// Rule 5: provider passes through verbatim; absent defaults to
	// "Unknown". Unknown names are accepted, never rejected.
	provider := strings.TrimSpace(raw["provider"])
	if provider == "" {
		provider = "Unknown"
	}
	fields.Provider = provider
	fields.ProviderKnown = v.providerKnown(provider)

	fields.Latitude = parsed["latitude"]
	fields.Longitude = parsed["longitude"]
	fields.DownloadMbps = parsed["download"]
	fields.UploadMbps = parsed["upload"]
	fields.LatencyMs = parsed["latency"]
	fields.JitterMs = parsed["jitter"]
	fields.PacketLossPct = parsed["packet_loss"]

	return fields, nil
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v *Validator) providerKnown(provider string) bool {
	if len(v.KnownProviders) == 0 {
		return true
	}
	for _, known := range v.KnownProviders {
		if strings.EqualFold(known, provider) {
			return true
		}
	}
	return false
}

func lookup(raw RawRecord, rule numericRule) (string, bool) {
	if value, ok := raw[rule.canonical]; ok && strings.TrimSpace(value) != "" {
		return value, true
	}
	for _, alias := range rule.aliases {
		if value, ok := raw[alias]; ok && strings.TrimSpace(value) != "" {
			return value, true
		}
	}
	return "", false
}

// timestampLayouts covers the ISO-8601 shapes seen in field data: full
// RFC 3339, zone-less date-times, and bare dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
