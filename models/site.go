package models

import "fmt"

// Site represents a physical count site with its display metadata.
type Site struct {
	SiteID   int     `json:"id"`
	SiteName string  `json:"name"`
	Label    string  `json:"label,omitempty"`
	SiteLat  float64 `json:"lat"`
	SiteLon  float64 `json:"lon"`
}

// DisplayName returns the site name, or a synthesized one when the
// metadata row carried no name.
func (s *Site) DisplayName() string {
	if s.SiteName != "" {
		return s.SiteName
	}
	return fmt.Sprintf("Site %d", s.SiteID)
}

func (s *Site) ToString() string {
	return fmt.Sprintf("Site(id=%d, name=%s, lat=%f, lon=%f)",
		s.SiteID, s.SiteName, s.SiteLat, s.SiteLon)
}
