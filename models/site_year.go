package models

// SiteYear is the normalized output of bias-correction for one site in one
// year. AADV is the combined estimate across the active count types; the
// per-type fields are zero when that type was filtered out or had no data.
type SiteYear struct {
	SiteID   int     `json:"site_id"`
	Year     int     `json:"year"`
	BikeAADV float64 `json:"bike_aadv,omitempty"`
	PedAADV  float64 `json:"ped_aadv,omitempty"`
	AADV     float64 `json:"aadv"`
}

// AADVResult wraps a SiteYear for the output boundary consumed by charts.
type AADVResult struct {
	SiteYear SiteYear `json:"site_year"`
}
