package countfeed

import (
	"fmt"

	"counts-server/api"
	"counts-server/models"
)

// CountQueryResponse is the envelope the count feature service returns for
// raw count queries.
type CountQueryResponse struct {
	Records []models.RawCountRecord `json:"records"`
}

// SitesResponse is the envelope for site metadata queries.
type SitesResponse struct {
	Sites []models.Site `json:"sites"`
}

// CountFeedApiClient embeds the common HTTPClient
type CountFeedApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewCountFeedApiClient creates a new instance of CountFeedApiClient
func NewCountFeedApiClient(httpClient *api.HTTPClient) *CountFeedApiClient {
	return &CountFeedApiClient{
		HTTPClient: httpClient,
	}
}

// SetAPIKey sets the key sent with every feed request.
func (c *CountFeedApiClient) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

func (c *CountFeedApiClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}

// GetCountRecords fetches raw hourly count rows for the given year range.
func (c *CountFeedApiClient) GetCountRecords(startYear, endYear int) ([]models.RawCountRecord, error) {
	var response CountQueryResponse
	endpoint := fmt.Sprintf("/counts/query?start_year=%d&end_year=%d", startYear, endYear)
	if err := c.Request("GET", endpoint, c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response.Records, nil
}

// GetSites fetches all count-site metadata rows.
func (c *CountFeedApiClient) GetSites() ([]models.Site, error) {
	var response SitesResponse
	if err := c.Request("GET", "/sites", c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response.Sites, nil
}
