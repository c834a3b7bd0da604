package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockSiteHandler is a stub implementation of the handler surface.
type MockSiteHandler struct{}

func (h *MockSiteHandler) respond(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (h *MockSiteHandler) GetTopSites(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "top sites"}`)
}

func (h *MockSiteHandler) GetNearbySites(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "nearby sites"}`)
}

func (h *MockSiteHandler) GetBucketAverages(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "buckets"}`)
}

func (h *MockSiteHandler) GetSiteDataPeriods(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "periods"}`)
}

func (h *MockSiteHandler) GetAADVResults(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "aadv"}`)
}

func (h *MockSiteHandler) GetBucketChart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `<html></html>`)
}

func (h *MockSiteHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"status": "pong"}`)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	mockSiteHandler := &MockSiteHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(mockSiteHandler, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Top Sites",
			method:     "GET",
			path:       "/v1/sites/top",
			statusCode: http.StatusOK,
			response:   `{"message": "top sites"}`,
		},
		{
			name:       "Nearby Sites",
			method:     "GET",
			path:       "/v1/sites/nearby",
			statusCode: http.StatusOK,
			response:   `{"message": "nearby sites"}`,
		},
		{
			name:       "Bucket Averages",
			method:     "GET",
			path:       "/v1/volumes/buckets",
			statusCode: http.StatusOK,
			response:   `{"message": "buckets"}`,
		},
		{
			name:       "Site Data Periods",
			method:     "GET",
			path:       "/v1/sites/12/periods",
			statusCode: http.StatusOK,
			response:   `{"message": "periods"}`,
		},
		{
			name:       "AADV Results",
			method:     "GET",
			path:       "/v1/aadv",
			statusCode: http.StatusOK,
			response:   `{"message": "aadv"}`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status": "pong"}`,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
		{
			name:       "Wrong Method",
			method:     "POST",
			path:       "/v1/sites/top",
			statusCode: http.StatusMethodNotAllowed,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
