package countfeed

import (
	"fmt"

	"counts-server/config"
	"counts-server/models"
	"counts-server/util"
)

// CountFeedApiClientMock serves the JSON fixtures under resources/ instead
// of hitting the real feature service.
type CountFeedApiClientMock struct {
}

// NewCountFeedApiClientMock creates a new instance of CountFeedApiClientMock
func NewCountFeedApiClientMock() *CountFeedApiClientMock {
	return &CountFeedApiClientMock{}
}

// SetAPIKey is a no-op on the mock.
func (c *CountFeedApiClientMock) SetAPIKey(apiKey string) {}

// GetCountRecords returns the fixture count rows filtered to the year range.
func (c *CountFeedApiClientMock) GetCountRecords(startYear, endYear int) ([]models.RawCountRecord, error) {
	records, err := util.ReadRawCountsFromJSON(config.GetResourcePath(config.RAW_COUNTS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read raw counts fixture")
		return nil, err
	}

	if startYear == 0 && endYear == 0 {
		return records, nil
	}
	filtered := make([]models.RawCountRecord, 0, len(records))
	for _, r := range records {
		year := r.Timestamp.Year()
		if (startYear == 0 || year >= startYear) && (endYear == 0 || year <= endYear) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// GetSites returns the fixture site metadata.
func (c *CountFeedApiClientMock) GetSites() ([]models.Site, error) {
	sites, err := util.ReadSitesFromJSON(config.GetResourcePath(config.SITES_RESOURCE))
	if err != nil {
		fmt.Println("Could not read sites fixture")
		return nil, err
	}
	return sites, nil
}
