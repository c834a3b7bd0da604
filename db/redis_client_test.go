package db_test

import (
	"context"
	"encoding/json"
	"testing"

	"counts-server/db"
)

func TestMockRedisClient_SetAndGet(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	if err := client.Set("aadv_v1:12", "540"); err != nil {
		t.Fatalf("Expected no error on Set, got %v", err)
	}

	val, err := client.Get("aadv_v1:12")
	if err != nil {
		t.Fatalf("Expected no error on Get, got %v", err)
	}
	if val != "540" {
		t.Errorf("Expected value 540, got %s", val)
	}

	if _, err := client.Get("missing_key"); err == nil {
		t.Errorf("Expected error for missing key, got nil")
	}
}

func TestMockRedisClient_GeoRoundTrip(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	payload := map[string]interface{}{"id": 7, "name": "State St & Anapamu"}
	err := client.AddLocationWithJSON(context.Background(), "sites_geo_v1", "sites_geo_member_v1:7", 34.42, -119.70, payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	results, err := client.GetLocationsWithinRadius("sites_geo_v1", 34.42, -119.70, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 payload, got %d", len(results))
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(results[0]), &decoded); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}
	if decoded["name"] != "State St & Anapamu" {
		t.Errorf("Unexpected payload name: %v", decoded["name"])
	}
}

func TestMockRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	_ = client.Set("summary_v1:1", "{}")
	_ = client.Set("summary_v1:2", "{}")
	_ = client.Set("other:1", "{}")

	keys, err := client.Keys("summary_v1:*")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Expected 2 matching keys, got %d", len(keys))
	}

	if err := client.Del("summary_v1:1"); err != nil {
		t.Fatalf("Expected no error on Del, got %v", err)
	}
	if _, err := client.Get("summary_v1:1"); err == nil {
		t.Errorf("Expected deleted key to be gone")
	}
}
