package redis

import (
	"context"
	"encoding/json"
	"testing"

	"counts-server/db"
	"counts-server/models"
)

func TestRedisSiteDAO_UpsertSite_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSiteDAO(mockClient)

	testSite := models.Site{
		SiteID:   12,
		SiteName: "Cabrillo Blvd Path",
		SiteLat:  34.4140,
		SiteLon:  -119.6860,
	}

	// Act
	err := dao.UpsertSite(testSite)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	expectedKey := "sites_geo_member_v1:12"
	storedValue, err := mockClient.Get(expectedKey)
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var storedSite models.Site
	if err := json.Unmarshal([]byte(storedValue), &storedSite); err != nil {
		t.Fatalf("Failed to unmarshal stored site data: %v", err)
	}
	if storedSite.SiteID != testSite.SiteID {
		t.Errorf("Expected SiteID %d, got %d", testSite.SiteID, storedSite.SiteID)
	}
}

func TestRedisSiteDAO_GetNearbySites_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSiteDAO(mockClient)

	_ = dao.UpsertSite(models.Site{SiteID: 1, SiteName: "State St", SiteLat: 34.42, SiteLon: -119.70})
	_ = dao.UpsertSite(models.Site{SiteID: 2, SiteName: "Modoc Rd", SiteLat: 34.43, SiteLon: -119.74})

	// Act
	sites, err := dao.GetNearbySites(34.42, -119.70, 10)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sites) != 2 {
		t.Errorf("Expected 2 sites, got %d", len(sites))
	}

	expectedIDs := map[int]bool{1: true, 2: true}
	for _, s := range sites {
		if !expectedIDs[s.SiteID] {
			t.Errorf("Unexpected site ID: %d", s.SiteID)
		}
	}
}

func TestRedisSiteDAO_GetNearbySites_NoResults(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSiteDAO(mockClient)

	sites, err := dao.GetNearbySites(34.42, -119.70, 10)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sites) != 0 {
		t.Errorf("Expected no sites, got %d", len(sites))
	}
}

func TestRedisSiteDAO_VolumeSummaryRoundTrip(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSiteDAO(mockClient)

	summary := &models.SiteVolumeSummary{
		SiteID: 5, SiteName: "Obern Trail", BikeAADV: 210, PedAADV: 44, TotalAADV: 254,
	}
	if err := dao.SetVolumeSummary(summary); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := dao.GetVolumeSummary(5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.TotalAADV != 254 || got.SiteName != "Obern Trail" {
		t.Errorf("Round trip mismatch: %+v", got)
	}

	ids, err := dao.ListCachedSummarySiteIDs()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ids) != 1 || ids[0] != 5 {
		t.Errorf("Expected cached summary IDs [5], got %v", ids)
	}

	if err := dao.DeleteVolumeSummary(5); err != nil {
		t.Fatalf("Expected no error on delete, got %v", err)
	}
	ids, _ = dao.ListCachedSummarySiteIDs()
	if len(ids) != 0 {
		t.Errorf("Expected no cached summaries after delete, got %v", ids)
	}
}

func TestRedisSiteDAO_SiteYearAADVMiss(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisSiteDAO(mockClient)

	got, err := dao.GetSiteYearAADV(9, 2022)
	if err != nil {
		t.Fatalf("Expected no error on cache miss, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil on cache miss, got %+v", got)
	}

	_ = dao.SetSiteYearAADV(models.AADVResult{
		SiteYear: models.SiteYear{SiteID: 9, Year: 2022, BikeAADV: 300, AADV: 300},
	})
	got, err = dao.GetSiteYearAADV(9, 2022)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil || got.SiteYear.AADV != 300 {
		t.Errorf("Expected cached AADV 300, got %+v", got)
	}
}
