package util

import (
	"encoding/json"
	"fmt"
	"os"

	"counts-server/models"
)

// ReadRawCountsFromJSON loads raw count records from JSON on disk.
func ReadRawCountsFromJSON(filePath string) ([]models.RawCountRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var records []models.RawCountRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw counts: %w", err)
	}
	return records, nil
}

// ReadSitesFromJSON loads site metadata rows from JSON on disk.
func ReadSitesFromJSON(filePath string) ([]models.Site, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var sites []models.Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sites: %w", err)
	}
	return sites, nil
}

// ReadFactorTableFromJSON loads a named factor table (expansion profiles or
// normalization factors) from JSON on disk.
func ReadFactorTableFromJSON(filePath string) (map[string]map[string]float64, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var table map[string]map[string]float64
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal factor table: %w", err)
	}
	return table, nil
}

// PrintVolumeSummariesPartially prints key fields of ranked summaries.
func PrintVolumeSummariesPartially(summaries []models.SiteVolumeSummary) {
	for i, s := range summaries {
		fmt.Printf("#%d %s (site %d): bike=%.1f ped=%.1f total=%.1f\n",
			i+1, s.SiteName, s.SiteID, s.BikeAADV, s.PedAADV, s.TotalAADV)
	}
}
