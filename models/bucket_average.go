package models

// TimeBucketAverage is one calendar-bucket average on the output boundary,
// shaped as the {name, value} pairs the chart components consume.
type TimeBucketAverage struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
