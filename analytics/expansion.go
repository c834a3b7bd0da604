package analytics

import (
	"log"
	"sort"

	"counts-server/models"
)

// ExpansionService estimates annual average daily volumes (AADV) from
// sparse short-duration counts by applying hour-of-day expansion profiles
// and day-of-week normalization factors.
type ExpansionService struct {
	factors *FactorCache
}

// NewExpansionService constructs the service with an explicitly owned
// factor cache.
func NewExpansionService(factors *FactorCache) *ExpansionService {
	return &ExpansionService{factors: factors}
}

// siteYearKey identifies one (site, year) output row.
type siteYearKey struct {
	siteID int
	year   int
}

// dayKey identifies one (site, year, date, type) daily estimate group.
type dayKey struct {
	siteID    int
	year      int
	date      string
	countType models.CountType
}

// ComputeAADV estimates bike and pedestrian AADV per site per year present
// in the input.
//
// Each surviving record is expanded to a daily estimate via its hour-of-day
// factor; per-day estimates are averaged, adjusted by the day-of-week
// factor, and the normalized day estimates average into the AADV. Records
// whose factor lookup misses are skipped with a warning so one bad hour
// never sinks the rest of the batch.
func (s *ExpansionService) ComputeAADV(records []models.RawCountRecord, opts models.AnalysisOptions) []models.AADVResult {
	type dayAcc struct {
		sum   float64
		hours int
	}
	days := make(map[dayKey]*dayAcc)

	skipped := 0
	for _, rec := range records {
		if rec.Counts <= 0 {
			continue
		}
		if !opts.IncludesType(rec.CountType) {
			continue
		}

		ts := rec.Timestamp.UTC()
		hourFactor, err := s.factors.HourFactor(opts.ExpansionProfileKey, ts.Hour())
		if err != nil {
			log.Printf("[ExpansionService] Skipping record site=%d ts=%s: %v", rec.SiteID, ts.Format("2006-01-02T15"), err)
			skipped++
			continue
		}

		key := dayKey{
			siteID:    rec.SiteID,
			year:      ts.Year(),
			date:      ts.Format("2006-01-02"),
			countType: rec.CountType,
		}
		acc, ok := days[key]
		if !ok {
			acc = &dayAcc{}
			days[key] = acc
		}
		acc.sum += rec.Counts * hourFactor
		acc.hours++
	}

	// average normalized day estimates into per-(site, year, type) AADVs
	type yearAcc struct {
		bikeSum, pedSum   float64
		bikeDays, pedDays int
	}
	years := make(map[siteYearKey]*yearAcc)

	for key, acc := range days {
		if acc.hours == 0 {
			continue
		}
		date, err := models.ParseTimestamp(key.date)
		if err != nil {
			continue
		}
		dayFactor, err := s.factors.DayFactor(opts.NormalizationFactorKey, date.Weekday())
		if err != nil {
			log.Printf("[ExpansionService] Skipping day site=%d date=%s: %v", key.siteID, key.date, err)
			skipped++
			continue
		}

		dayEstimate := (acc.sum / float64(acc.hours)) * dayFactor

		yk := siteYearKey{siteID: key.siteID, year: key.year}
		ya, ok := years[yk]
		if !ok {
			ya = &yearAcc{}
			years[yk] = ya
		}
		switch key.countType {
		case models.CountTypeBike:
			ya.bikeSum += dayEstimate
			ya.bikeDays++
		case models.CountTypePed:
			ya.pedSum += dayEstimate
			ya.pedDays++
		}
	}

	if skipped > 0 {
		log.Printf("[ExpansionService] Skipped %d records/days with missing factor data", skipped)
	}

	results := make([]models.AADVResult, 0, len(years))
	for yk, ya := range years {
		if opts.Year != 0 && yk.year != opts.Year {
			continue
		}
		sy := models.SiteYear{SiteID: yk.siteID, Year: yk.year}
		if ya.bikeDays > 0 {
			sy.BikeAADV = ya.bikeSum / float64(ya.bikeDays)
		}
		if ya.pedDays > 0 {
			sy.PedAADV = ya.pedSum / float64(ya.pedDays)
		}
		sy.AADV = sy.BikeAADV + sy.PedAADV
		results = append(results, models.AADVResult{SiteYear: sy})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].SiteYear, results[j].SiteYear
		if a.SiteID != b.SiteID {
			return a.SiteID < b.SiteID
		}
		return a.Year < b.Year
	})
	return results
}
