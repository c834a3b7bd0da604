package models

// SiteVolume is one per-(site, count-type) volume row, the input shape for
// ranking and rollup.
type SiteVolume struct {
	SiteID    int       `json:"site_id"`
	CountType CountType `json:"count_type"`
	AADV      float64   `json:"aadv"`
}

// SiteVolumeSummary rolls a site's per-type volumes into one ranked row.
// TotalAADV is always BikeAADV + PedAADV, never computed independently.
type SiteVolumeSummary struct {
	SiteID    int     `json:"site_id"`
	SiteName  string  `json:"site_name"`
	BikeAADV  float64 `json:"bike_aadv"`
	PedAADV   float64 `json:"ped_aadv"`
	TotalAADV float64 `json:"total_aadv"`
}
