package analytics

import (
	"fmt"
	"sort"

	"counts-server/models"
)

// RankSites rolls per-(site, count-type) volume rows into one summary per
// site, sorted descending by total volume and truncated to limit.
//
// Pure transform: inputs are never mutated, and identical inputs always
// produce identical output. Ties keep the order in which sites first appear
// in the input. A limit of zero or beyond the site count returns the full
// ranked list.
func RankSites(volumes []models.SiteVolume, siteNames map[int]string, limit int) []models.SiteVolumeSummary {
	totals := make(map[int]*models.SiteVolumeSummary)
	var order []int

	for _, v := range volumes {
		summary, ok := totals[v.SiteID]
		if !ok {
			summary = &models.SiteVolumeSummary{SiteID: v.SiteID}
			totals[v.SiteID] = summary
			order = append(order, v.SiteID)
		}
		switch v.CountType {
		case models.CountTypeBike:
			summary.BikeAADV += v.AADV
		case models.CountTypePed:
			summary.PedAADV += v.AADV
		}
	}

	summaries := make([]models.SiteVolumeSummary, 0, len(order))
	for _, siteID := range order {
		s := *totals[siteID]
		if name, ok := siteNames[siteID]; ok && name != "" {
			s.SiteName = name
		} else {
			s.SiteName = fmt.Sprintf("Site %d", siteID)
		}
		// total is additive by construction, never computed independently
		s.TotalAADV = s.BikeAADV + s.PedAADV
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalAADV > summaries[j].TotalAADV
	})

	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}
	return summaries
}
