package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"counts-server/analytics"
	"counts-server/config"
	"counts-server/models"
	services "counts-server/service"
)

const (
	LAT_QUERY_ARG         = "lat"
	LON_QUERY_ARG         = "lon"
	RADIUS_QUERY_ARG      = "radius"
	LIMIT_QUERY_ARG       = "limit"
	YEAR_QUERY_ARG        = "year"
	BIKE_QUERY_ARG        = "bike"
	PED_QUERY_ARG         = "ped"
	GRANULARITY_QUERY_ARG = "granularity"
	PROFILE_QUERY_ARG     = "profile"
	FACTORS_QUERY_ARG     = "factors"
	START_QUERY_ARG       = "start"
	END_QUERY_ARG         = "end"
)

// SiteHandler exposes the analytics pipeline over HTTP.
type SiteHandler struct {
	analyticsService *services.AnalyticsService
}

func NewSiteHandler(analyticsService *services.AnalyticsService) *SiteHandler {
	return &SiteHandler{analyticsService: analyticsService}
}

// GetTopSites handles GET /v1/sites/top
func (h *SiteHandler) GetTopSites(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	limit := parseArgIntDefault(vals, LIMIT_QUERY_ARG, 10)
	opts := parseAnalysisOptions(vals)

	summaries, err := h.analyticsService.GetTopSites(limit, opts)
	if err != nil {
		log.Println("Error ranking sites:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, summaries)
}

// GetNearbySites handles GET /v1/sites/nearby
// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius(float)}
func (h *SiteHandler) GetNearbySites(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	lat, err := parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err := parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err := parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}

	sites, err := h.analyticsService.GetNearbySites(lat, lon, radius)
	if err != nil {
		log.Println("Error loading nearby sites:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, sites)
}

// GetBucketAverages handles GET /v1/volumes/buckets
func (h *SiteHandler) GetBucketAverages(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	granularity, ok := parseGranularity(vals)
	if !ok {
		http.Error(w, "Invalid argument "+GRANULARITY_QUERY_ARG, http.StatusBadRequest)
		return
	}
	year := parseArgIntDefault(vals, YEAR_QUERY_ARG, 0)

	buckets, err := h.analyticsService.GetBucketAverages(granularity, year)
	if err != nil {
		log.Println("Error computing bucket averages:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, buckets)
}

// GetSiteDataPeriods handles GET /v1/sites/{id}/periods
// expects ?start={YYYY-MM-DD}&end={YYYY-MM-DD}
func (h *SiteHandler) GetSiteDataPeriods(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid site id", http.StatusBadRequest)
		return
	}

	refStart, refEnd, ok := parseRefSpan(r.URL.Query())
	if !ok {
		http.Error(w, "Invalid reference span", http.StatusBadRequest)
		return
	}

	rows, err := h.analyticsService.GetSiteDataPeriods(refStart, refEnd)
	if err != nil {
		log.Println("Error computing data periods:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	for _, row := range rows {
		if row.SiteID == siteID {
			writeJSON(w, row)
			return
		}
	}
	http.Error(w, "Site not found", http.StatusNotFound)
}

// GetAADVResults handles GET /v1/aadv
func (h *SiteHandler) GetAADVResults(w http.ResponseWriter, r *http.Request) {
	opts := parseAnalysisOptions(r.URL.Query())

	results, err := h.analyticsService.GetAADVResults(opts)
	if err != nil {
		log.Println("Error computing AADV results:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, results)
}

// GetBucketChart handles GET /v1/charts/buckets, rendering an HTML chart.
func (h *SiteHandler) GetBucketChart(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()

	granularity, ok := parseGranularity(vals)
	if !ok {
		http.Error(w, "Invalid argument "+GRANULARITY_QUERY_ARG, http.StatusBadRequest)
		return
	}
	year := parseArgIntDefault(vals, YEAR_QUERY_ARG, 0)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.analyticsService.RenderBucketChart(granularity, year, w); err != nil {
		log.Println("Error rendering bucket chart:", err)
	}
}

// Ping handles GET /ping
func (h *SiteHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

func parseAnalysisOptions(vals url.Values) models.AnalysisOptions {
	opts := models.DefaultAnalysisOptions()
	opts.ExpansionProfileKey = config.DEFAULT_EXPANSION_PROFILE_KEY
	opts.NormalizationFactorKey = config.DEFAULT_NORMALIZATION_FACTOR_KEY

	if v := vals.Get(BIKE_QUERY_ARG); v != "" {
		opts.ShowBicyclist, _ = strconv.ParseBool(v)
	}
	if v := vals.Get(PED_QUERY_ARG); v != "" {
		opts.ShowPedestrian, _ = strconv.ParseBool(v)
	}
	if v := vals.Get(PROFILE_QUERY_ARG); v != "" {
		opts.ExpansionProfileKey = v
	}
	if v := vals.Get(FACTORS_QUERY_ARG); v != "" {
		opts.NormalizationFactorKey = v
	}
	opts.Year = parseArgIntDefault(vals, YEAR_QUERY_ARG, 0)
	return opts
}

func parseGranularity(vals url.Values) (analytics.BucketGranularity, bool) {
	switch vals.Get(GRANULARITY_QUERY_ARG) {
	case "hour":
		return analytics.BucketHourOfDay, true
	case "weekday":
		return analytics.BucketDayOfWeek, true
	case "month", "":
		return analytics.BucketMonth, true
	case "year":
		return analytics.BucketYear, true
	case "weekend":
		return analytics.BucketWeekdayWeekend, true
	}
	return "", false
}

func parseRefSpan(vals url.Values) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", vals.Get(START_QUERY_ARG))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", vals.Get(END_QUERY_ARG))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func parseArgIntDefault(vals url.Values, name string, def int) int {
	s := vals.Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}
