package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CountType discriminates the road-user type of a count record.
type CountType string

const (
	CountTypeBike CountType = "bike"
	CountTypePed  CountType = "ped"
)

// RawCountRecord is one sensor-hour observation as exported by the external
// spatial-query layer. A count of exactly zero means "no valid sample" and is
// excluded from averaging downstream, never treated as observed zero traffic.
type RawCountRecord struct {
	SiteID    int       `json:"site_id"`
	Timestamp time.Time `json:"timestamp"`
	Counts    float64   `json:"counts"`
	CountType CountType `json:"count_type"`
}

// UnmarshalJSON accepts timestamps as ISO-8601 strings or epoch
// seconds/millis, since the exporter emits both depending on the layer.
func (r *RawCountRecord) UnmarshalJSON(data []byte) error {
	type Alias RawCountRecord
	aux := &struct {
		Timestamp interface{} `json:"timestamp"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch ts := aux.Timestamp.(type) {
	case float64:
		// treat large values as epoch millis
		if ts > 1e12 {
			r.Timestamp = time.UnixMilli(int64(ts)).UTC()
		} else {
			r.Timestamp = time.Unix(int64(ts), 0).UTC()
		}
	case string:
		parsed, err := ParseTimestamp(ts)
		if err != nil {
			return err
		}
		r.Timestamp = parsed
	case nil:
		return fmt.Errorf("count record for site %d has no timestamp", r.SiteID)
	default:
		return fmt.Errorf("unrecognized timestamp value: %v", aux.Timestamp)
	}

	return nil
}

// ParseTimestamp parses an ISO-8601 timestamp, tolerating a missing zone
// (assumed UTC) and fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

// Valid reports whether the record carries a usable sample.
func (r *RawCountRecord) Valid() bool {
	if r.Counts <= 0 {
		return false
	}
	if r.Timestamp.IsZero() {
		return false
	}
	return r.CountType == CountTypeBike || r.CountType == CountTypePed
}
