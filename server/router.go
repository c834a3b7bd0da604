package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SiteRoutes is the handler surface the router binds. The concrete
// implementation lives in server/handlers.
type SiteRoutes interface {
	GetTopSites(w http.ResponseWriter, r *http.Request)
	GetNearbySites(w http.ResponseWriter, r *http.Request)
	GetBucketAverages(w http.ResponseWriter, r *http.Request)
	GetSiteDataPeriods(w http.ResponseWriter, r *http.Request)
	GetAADVResults(w http.ResponseWriter, r *http.Request)
	GetBucketChart(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	siteHandler SiteRoutes
	router      *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	siteHandler SiteRoutes,
	router *mux.Router) *Router {
	return &Router{
		siteHandler: siteHandler,
		router:      router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?limit={n}&year={year}&bike={bool}&ped={bool}
	r.router.HandleFunc("/v1/sites/top", r.siteHandler.GetTopSites).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius(float)}
	r.router.HandleFunc("/v1/sites/nearby", r.siteHandler.GetNearbySites).Methods("GET")

	// expects ?granularity={hour|weekday|month|year|weekend}&year={year}
	r.router.HandleFunc("/v1/volumes/buckets", r.siteHandler.GetBucketAverages).Methods("GET")

	// expects ?start={YYYY-MM-DD}&end={YYYY-MM-DD}
	r.router.HandleFunc("/v1/sites/{id}/periods", r.siteHandler.GetSiteDataPeriods).Methods("GET")

	// expects ?year={year}&bike={bool}&ped={bool}
	r.router.HandleFunc("/v1/aadv", r.siteHandler.GetAADVResults).Methods("GET")

	r.router.HandleFunc("/v1/charts/buckets", r.siteHandler.GetBucketChart).Methods("GET")

	r.router.HandleFunc("/ping", r.siteHandler.Ping).Methods("GET")
}
