package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"counts-server/db"
	"counts-server/models"
)

const SITES_GEO_KEY_V1 = "sites_geo_v1"
const SITES_GEO_MEMBER_FORMAT_V1 = "sites_geo_member_v1:%d"

// SITE_SUMMARY_KEY_FORMAT caches the ranked volume rollup per site.
const SITE_SUMMARY_KEY_FORMAT = "site_summary_v1:%d"

// SITE_YEAR_AADV_KEY_FORMAT caches a normalized AADV result per site-year.
const SITE_YEAR_AADV_KEY_FORMAT = "site_year_aadv_v1:%d_%d"

// SITE_PERIODS_KEY_FORMAT caches a site's normalized data periods.
const SITE_PERIODS_KEY_FORMAT = "site_periods_v1:%d"

// RedisSiteDAO handles count-site storage and derived-result caching.
type RedisSiteDAO struct {
	client db.RedisClient
}

// NewRedisSiteDAO initializes a RedisSiteDAO with the Redis client.
func NewRedisSiteDAO(client db.RedisClient) *RedisSiteDAO {
	return &RedisSiteDAO{client: client}
}

// UpsertSite stores the site in the geo index with its JSON payload.
func (dao *RedisSiteDAO) UpsertSite(s models.Site) error {
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(SITES_GEO_MEMBER_FORMAT_V1, s.SiteID)
	return dao.client.AddLocationWithJSON(ctx, SITES_GEO_KEY_V1, memberKey, s.SiteLat, s.SiteLon, s)
}

// GetNearbySites retrieves sites within a given radius (in km).
func (dao *RedisSiteDAO) GetNearbySites(lat, lon, radius float64) ([]models.Site, error) {
	sitesJSON, err := dao.client.GetLocationsWithinRadius(SITES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisSiteDAO] failed to get sites: %w", err)
	}

	sites := make([]models.Site, len(sitesJSON))
	for i, siteJSON := range sitesJSON {
		if err := json.Unmarshal([]byte(siteJSON), &sites[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal site JSON: %w", err)
		}
	}
	return sites, nil
}

// ListAllSiteIDs returns every site ID present in the geo index.
func (dao *RedisSiteDAO) ListAllSiteIDs() ([]int, error) {
	pattern := strings.Replace(SITES_GEO_MEMBER_FORMAT_V1, "%d", "*", 1)
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list site geo keys: %w", err)
	}
	prefix := strings.Replace(SITES_GEO_MEMBER_FORMAT_V1, "%d", "", 1)
	ids := make([]int, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.Atoi(strings.TrimPrefix(k, prefix))
		if err != nil {
			log.Printf("[RedisSiteDAO] Ignoring malformed geo member key %s", k)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SetVolumeSummary caches the volume rollup for one site.
func (dao *RedisSiteDAO) SetVolumeSummary(s *models.SiteVolumeSummary) error {
	key := fmt.Sprintf(SITE_SUMMARY_KEY_FORMAT, s.SiteID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary for site %d: %w", s.SiteID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set summary in redis: %w", err)
	}
	return nil
}

// GetVolumeSummary retrieves the cached volume rollup for one site.
func (dao *RedisSiteDAO) GetVolumeSummary(siteID int) (*models.SiteVolumeSummary, error) {
	key := fmt.Sprintf(SITE_SUMMARY_KEY_FORMAT, siteID)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary from redis: %w", err)
	}
	var s models.SiteVolumeSummary
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary JSON: %w", err)
	}
	return &s, nil
}

// ListCachedSummarySiteIDs returns the site IDs of all cached summaries.
func (dao *RedisSiteDAO) ListCachedSummarySiteIDs() ([]int, error) {
	pattern := strings.Replace(SITE_SUMMARY_KEY_FORMAT, "%d", "*", 1)
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list summary keys: %w", err)
	}
	prefix := strings.Replace(SITE_SUMMARY_KEY_FORMAT, "%d", "", 1)
	ids := make([]int, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.Atoi(strings.TrimPrefix(k, prefix))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteVolumeSummary drops a stale cached rollup.
func (dao *RedisSiteDAO) DeleteVolumeSummary(siteID int) error {
	key := fmt.Sprintf(SITE_SUMMARY_KEY_FORMAT, siteID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete summary key %s: %w", key, err)
	}
	return nil
}

// SetSiteYearAADV caches one normalized AADV result.
func (dao *RedisSiteDAO) SetSiteYearAADV(r models.AADVResult) error {
	key := fmt.Sprintf(SITE_YEAR_AADV_KEY_FORMAT, r.SiteYear.SiteID, r.SiteYear.Year)
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal AADV for site %d year %d: %w", r.SiteYear.SiteID, r.SiteYear.Year, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set AADV in redis: %w", err)
	}
	return nil
}

// GetSiteYearAADV retrieves a cached AADV result, nil on cache miss.
func (dao *RedisSiteDAO) GetSiteYearAADV(siteID, year int) (*models.AADVResult, error) {
	key := fmt.Sprintf(SITE_YEAR_AADV_KEY_FORMAT, siteID, year)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, nil
	}
	var r models.AADVResult
	if err := json.Unmarshal([]byte(str), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AADV JSON: %w", err)
	}
	return &r, nil
}

// SetDataPeriods caches a site's normalized data-period row.
func (dao *RedisSiteDAO) SetDataPeriods(row models.SiteDataPeriods) error {
	key := fmt.Sprintf(SITE_PERIODS_KEY_FORMAT, row.SiteID)
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal data periods for site %d: %w", row.SiteID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set data periods in redis: %w", err)
	}
	return nil
}

// GetDataPeriods retrieves a cached data-period row, nil on cache miss.
func (dao *RedisSiteDAO) GetDataPeriods(siteID int) (*models.SiteDataPeriods, error) {
	key := fmt.Sprintf(SITE_PERIODS_KEY_FORMAT, siteID)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, nil
	}
	var row models.SiteDataPeriods
	if err := json.Unmarshal([]byte(str), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data periods JSON: %w", err)
	}
	return &row, nil
}
