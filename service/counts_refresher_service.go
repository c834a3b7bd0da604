package services

import (
	"log"
	"time"

	"counts-server/api/countfeed"
	"counts-server/config"
	redisdao "counts-server/dao/redis"
	"counts-server/models"
)

// CountsRefresherService periodically re-fetches raw counts and refreshes
// the cached sites, rollups, AADV results and data periods in Redis.
type CountsRefresherService struct {
	siteDao   *redisdao.RedisSiteDAO
	countFeed countfeed.CountFeedAPI
	analytics *AnalyticsService
}

// NewCountsRefresherService constructs a new Refresher with dependencies.
func NewCountsRefresherService(
	siteDao *redisdao.RedisSiteDAO,
	countFeed countfeed.CountFeedAPI,
	analyticsService *AnalyticsService,
) *CountsRefresherService {
	return &CountsRefresherService{
		siteDao:   siteDao,
		countFeed: countFeed,
		analytics: analyticsService,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (cr *CountsRefresherService) StartPeriodicJob(interval time.Duration) {
	go cr.startPeriodicJob(interval)
}

func (cr *CountsRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[CountsRefresherService] Running periodic counts refresher job.")
		if err := cr.RefreshCountsData(); err != nil {
			log.Printf("[CountsRefresherService] RefreshCountsData returned error: %v", err)
		} else {
			log.Println("[CountsRefresherService] RefreshCountsData completed successfully.")
		}
	}
}

// RefreshCountsData orchestrates the refresh: sites into the geo index,
// then recomputed rollups, AADV results and data periods into the cache.
// Individual failures are logged and skipped; only a failed upstream fetch
// aborts the run.
func (cr *CountsRefresherService) RefreshCountsData() error {
	sites, err := cr.countFeed.GetSites()
	if err != nil {
		log.Printf("[CountsRefresherService] Failed to fetch sites: %v", err)
		return err
	}

	log.Printf("[CountsRefresherService] Upserting %d sites", len(sites))
	for _, site := range sites {
		if err := cr.siteDao.UpsertSite(site); err != nil {
			log.Printf("[CountsRefresherService] Upsert failed for site %d: %v", site.SiteID, err)
		}
	}

	opts := models.DefaultAnalysisOptions()
	opts.ExpansionProfileKey = config.DEFAULT_EXPANSION_PROFILE_KEY
	opts.NormalizationFactorKey = config.DEFAULT_NORMALIZATION_FACTOR_KEY

	cr.refreshSummaries(opts)
	cr.refreshAADVResults(opts)
	cr.refreshDataPeriods()

	return nil
}

func (cr *CountsRefresherService) refreshSummaries(opts models.AnalysisOptions) {
	summaries, err := cr.analytics.GetTopSites(0, opts)
	if err != nil {
		log.Printf("[CountsRefresherService] Failed to compute summaries: %v", err)
		return
	}
	log.Printf("[CountsRefresherService] Caching %d volume summaries", len(summaries))
	for i := range summaries {
		if err := cr.siteDao.SetVolumeSummary(&summaries[i]); err != nil {
			log.Printf("[CountsRefresherService] SetVolumeSummary failed for site %d: %v", summaries[i].SiteID, err)
		}
	}
}

func (cr *CountsRefresherService) refreshAADVResults(opts models.AnalysisOptions) {
	results, err := cr.analytics.GetAADVResults(opts)
	if err != nil {
		log.Printf("[CountsRefresherService] Failed to compute AADV results: %v", err)
		return
	}
	log.Printf("[CountsRefresherService] Caching %d site-year AADV results", len(results))
	for _, r := range results {
		if err := cr.siteDao.SetSiteYearAADV(r); err != nil {
			log.Printf("[CountsRefresherService] SetSiteYearAADV failed for site %d year %d: %v",
				r.SiteYear.SiteID, r.SiteYear.Year, err)
		}
	}
}

func (cr *CountsRefresherService) refreshDataPeriods() {
	now := time.Now().UTC()
	refStart := now.AddDate(-5, 0, 0)

	rows, err := cr.analytics.GetSiteDataPeriods(refStart, now)
	if err != nil {
		log.Printf("[CountsRefresherService] Failed to compute data periods: %v", err)
		return
	}
	log.Printf("[CountsRefresherService] Caching data periods for %d sites", len(rows))
	for _, row := range rows {
		if err := cr.siteDao.SetDataPeriods(row); err != nil {
			log.Printf("[CountsRefresherService] SetDataPeriods failed for site %d: %v", row.SiteID, err)
		}
	}
}
