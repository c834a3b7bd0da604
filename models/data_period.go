package models

import "time"

// DataPeriod is a maximal run of count dates for one site with no internal
// gap exceeding the granularity threshold.
type DataPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NormalizedPeriod is a DataPeriod scaled into 0-100 percent offsets within
// a reference time span, ready for sparkline rendering.
type NormalizedPeriod struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SiteDataPeriods is one sparkline row: a site and its normalized coverage.
type SiteDataPeriods struct {
	SiteID      int                `json:"id"`
	SiteName    string             `json:"name"`
	Label       string             `json:"label,omitempty"`
	DataPeriods []NormalizedPeriod `json:"data_periods"`
}
