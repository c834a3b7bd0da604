package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// HTTP server
const SERVER_ADDRESS = ":8080"

// Counts Refresher config
const COUNTS_REFRESHER_SERVICE_SCHEDULE_MINUTES = 60

// Count Feed (external feature-service layer)
const COUNT_FEED_ENDPOINT_BASE_V1 = "https://counts.example.org/api/v1"

// Gap detection defaults. The thresholds and the 2-year weekly switchover are
// tunable; these values match the observed behavior of the count exporter.
const GAP_DAILY_THRESHOLD_DAYS = 3
const GAP_WEEKLY_THRESHOLD_WEEKS = 2
const GAP_WEEKLY_SWITCHOVER_YEARS = 2

// Minimum rendered width (percent) for a single-day data period.
const MIN_DATA_PERIOD_WIDTH_PERCENT = 0.5

// Default factor table keys
const DEFAULT_EXPANSION_PROFILE_KEY = "moderate"
const DEFAULT_NORMALIZATION_FACTOR_KEY = "citywide"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const RAW_COUNTS_RESOURCE = "raw_counts.json"
const SITES_RESOURCE = "sites.json"
const EXPANSION_PROFILES_RESOURCE = "expansion_profiles.json"
const NORMALIZATION_FACTORS_RESOURCE = "normalization_factors.json"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
