package countfeed

import "counts-server/models"

// CountFeedAPI defines the interface for the external spatial-query layer
// that serves raw count rows and site metadata.
type CountFeedAPI interface {
	GetCountRecords(startYear, endYear int) ([]models.RawCountRecord, error)
	GetSites() ([]models.Site, error)
	SetAPIKey(apiKey string)
}
