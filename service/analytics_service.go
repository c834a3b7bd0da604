package services

import (
	"fmt"
	"io"
	"log"
	"time"

	"counts-server/analytics"
	"counts-server/api/countfeed"
	redisdao "counts-server/dao/redis"
	"counts-server/models"
	"counts-server/util"
)

// AnalyticsService orchestrates the normalization pipeline: raw rows from
// the count feed go through the analytics transforms and come out as
// handler-ready aggregates.
type AnalyticsService struct {
	siteDao   *redisdao.RedisSiteDAO
	countFeed countfeed.CountFeedAPI
	expansion *analytics.ExpansionService
	gapConfig analytics.GapConfig
}

// NewAnalyticsService constructs the service with its collaborators.
func NewAnalyticsService(
	siteDao *redisdao.RedisSiteDAO,
	countFeed countfeed.CountFeedAPI,
	expansion *analytics.ExpansionService,
) *AnalyticsService {
	return &AnalyticsService{
		siteDao:   siteDao,
		countFeed: countFeed,
		expansion: expansion,
		gapConfig: analytics.DefaultGapConfig(),
	}
}

// GetTopSites ranks sites by combined AADV and returns the top N summaries.
func (s *AnalyticsService) GetTopSites(limit int, opts models.AnalysisOptions) ([]models.SiteVolumeSummary, error) {
	records, err := s.countFeed.GetCountRecords(opts.Year, opts.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch count records: %w", err)
	}
	sites, err := s.countFeed.GetSites()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sites: %w", err)
	}

	results := s.expansion.ComputeAADV(records, opts)
	volumes := flattenToVolumes(results)

	names := make(map[int]string, len(sites))
	for _, site := range sites {
		names[site.SiteID] = site.DisplayName()
	}

	return analytics.RankSites(volumes, names, limit), nil
}

// GetBucketAverages computes per-bucket average hourly volumes for the
// given granularity, optionally restricted to one year.
func (s *AnalyticsService) GetBucketAverages(granularity analytics.BucketGranularity, year int) ([]models.TimeBucketAverage, error) {
	records, err := s.countFeed.GetCountRecords(year, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch count records: %w", err)
	}
	return analytics.BucketAverages(records, granularity), nil
}

// GetAADVResults returns the per-site-year normalized AADV estimates.
func (s *AnalyticsService) GetAADVResults(opts models.AnalysisOptions) ([]models.AADVResult, error) {
	records, err := s.countFeed.GetCountRecords(opts.Year, opts.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch count records: %w", err)
	}
	return s.expansion.ComputeAADV(records, opts), nil
}

// GetSiteDataPeriods builds one sparkline row per site: the site's count
// dates partitioned into data periods and normalized into percent offsets
// within the reference span.
func (s *AnalyticsService) GetSiteDataPeriods(refStart, refEnd time.Time) ([]models.SiteDataPeriods, error) {
	records, err := s.countFeed.GetCountRecords(0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch count records: %w", err)
	}
	sites, err := s.countFeed.GetSites()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sites: %w", err)
	}

	dates := collectCountDates(records)

	rows := make([]models.SiteDataPeriods, 0, len(sites))
	for _, site := range sites {
		periods := analytics.DetectPeriods(dates[site.SiteID], refStart, refEnd, s.gapConfig)
		rows = append(rows, models.SiteDataPeriods{
			SiteID:      site.SiteID,
			SiteName:    site.DisplayName(),
			Label:       site.Label,
			DataPeriods: analytics.NormalizePeriods(periods, refStart, refEnd, s.gapConfig.MinWidthPercent),
		})
	}
	return rows, nil
}

// RenderBucketChart writes an HTML bar chart of the bucket averages.
func (s *AnalyticsService) RenderBucketChart(granularity analytics.BucketGranularity, year int, w io.Writer) error {
	buckets, err := s.GetBucketAverages(granularity, year)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Average hourly volume by %s", granularity)
	return util.PlotBucketAverages(title, buckets, w)
}

// GetNearbySites reads the cached geo index.
func (s *AnalyticsService) GetNearbySites(lat, lon, radius float64) ([]models.Site, error) {
	return s.siteDao.GetNearbySites(lat, lon, radius)
}

// flattenToVolumes turns site-year AADV results into per-(site, type)
// volume rows. Sites with several years contribute the mean of the yearly
// estimates so a long-running site is not inflated against a new one.
func flattenToVolumes(results []models.AADVResult) []models.SiteVolume {
	type typeAcc struct {
		sum   float64
		years int
	}
	bike := make(map[int]*typeAcc)
	ped := make(map[int]*typeAcc)
	var order []int

	for _, r := range results {
		sy := r.SiteYear
		if _, seen := bike[sy.SiteID]; !seen {
			bike[sy.SiteID] = &typeAcc{}
			ped[sy.SiteID] = &typeAcc{}
			order = append(order, sy.SiteID)
		}
		if sy.BikeAADV > 0 {
			bike[sy.SiteID].sum += sy.BikeAADV
			bike[sy.SiteID].years++
		}
		if sy.PedAADV > 0 {
			ped[sy.SiteID].sum += sy.PedAADV
			ped[sy.SiteID].years++
		}
	}

	var volumes []models.SiteVolume
	for _, siteID := range order {
		if acc := bike[siteID]; acc.years > 0 {
			volumes = append(volumes, models.SiteVolume{
				SiteID: siteID, CountType: models.CountTypeBike, AADV: acc.sum / float64(acc.years),
			})
		}
		if acc := ped[siteID]; acc.years > 0 {
			volumes = append(volumes, models.SiteVolume{
				SiteID: siteID, CountType: models.CountTypePed, AADV: acc.sum / float64(acc.years),
			})
		}
	}
	return volumes
}

// collectCountDates returns the distinct calendar dates with at least one
// valid count, per site, in ascending order.
func collectCountDates(records []models.RawCountRecord) map[int][]time.Time {
	seen := make(map[int]map[string]bool)
	for _, rec := range records {
		if rec.Counts <= 0 {
			continue
		}
		date := rec.Timestamp.UTC().Format("2006-01-02")
		if seen[rec.SiteID] == nil {
			seen[rec.SiteID] = make(map[string]bool)
		}
		seen[rec.SiteID][date] = true
	}

	out := make(map[int][]time.Time, len(seen))
	for siteID, dates := range seen {
		list := make([]time.Time, 0, len(dates))
		for date := range dates {
			t, err := models.ParseTimestamp(date)
			if err != nil {
				log.Printf("[AnalyticsService] Ignoring unparseable date %s for site %d", date, siteID)
				continue
			}
			list = append(list, t)
		}
		out[siteID] = list
	}
	return out
}
