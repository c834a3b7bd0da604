package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"counts-server/models"
)

// BucketGranularity selects the calendar bucketing for average volumes.
type BucketGranularity string

const (
	BucketHourOfDay      BucketGranularity = "hour"
	BucketDayOfWeek      BucketGranularity = "weekday"
	BucketMonth          BucketGranularity = "month"
	BucketYear           BucketGranularity = "year"
	BucketWeekdayWeekend BucketGranularity = "weekend"
)

// sitePeriodAcc accumulates raw hourly samples for one (site, sub-period).
type sitePeriodAcc struct {
	bucket string
	sum    float64
	hours  int
}

// BucketAverages groups raw hourly records into calendar buckets and returns
// the average hourly volume per bucket.
//
// Averaging is two-level: records first collapse to one mean per site and
// sub-period (a site-day, or a site-day-hour for hour-of-day bucketing), and
// only those summary values are averaged within a bucket. A site with many
// sampled hours on one day therefore carries the same weight as a site with
// a single sample on another day. Flat-averaging the raw readings here was a
// prior bug; do not reintroduce it.
//
// Zero-count records are dropped before any averaging: zero means "no valid
// sample", not observed-zero traffic.
func BucketAverages(records []models.RawCountRecord, granularity BucketGranularity) []models.TimeBucketAverage {
	accs := make(map[string]*sitePeriodAcc)

	for _, rec := range records {
		if rec.Counts <= 0 {
			continue
		}
		subKey, bucket := bucketKeys(rec, granularity)
		acc, ok := accs[subKey]
		if !ok {
			acc = &sitePeriodAcc{bucket: bucket}
			accs[subKey] = acc
		}
		acc.sum += rec.Counts
		acc.hours++
	}

	// second level: average the site-period means per bucket
	bucketSums := make(map[string]float64)
	bucketCounts := make(map[string]int)
	for _, acc := range accs {
		if acc.hours == 0 {
			continue
		}
		bucketSums[acc.bucket] += acc.sum / float64(acc.hours)
		bucketCounts[acc.bucket]++
	}

	averages := make(map[string]float64)
	if granularity == BucketHourOfDay {
		// hour-of-day pre-seeds all 24 hours so charts always get a full axis
		for h := 0; h < 24; h++ {
			averages[hourLabel(h)] = 0
		}
	}
	for bucket, sum := range bucketSums {
		averages[bucket] = math.Round(sum / float64(bucketCounts[bucket]))
	}

	labels := make([]string, 0, len(averages))
	for label := range averages {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return bucketRank(labels[i], granularity) < bucketRank(labels[j], granularity)
	})

	out := make([]models.TimeBucketAverage, 0, len(labels))
	for _, label := range labels {
		out = append(out, models.TimeBucketAverage{Name: label, Value: averages[label]})
	}
	return out
}

// bucketKeys returns the site-sub-period grouping key and the bucket label
// for one record under the given granularity.
func bucketKeys(rec models.RawCountRecord, granularity BucketGranularity) (string, string) {
	ts := rec.Timestamp.UTC()
	date := ts.Format("2006-01-02")

	switch granularity {
	case BucketHourOfDay:
		hour := ts.Hour()
		return fmt.Sprintf("%d|%s|%d", rec.SiteID, date, hour), hourLabel(hour)
	case BucketDayOfWeek:
		return fmt.Sprintf("%d|%s", rec.SiteID, date), ts.Weekday().String()[:3]
	case BucketMonth:
		return fmt.Sprintf("%d|%s", rec.SiteID, date), ts.Month().String()[:3]
	case BucketYear:
		return fmt.Sprintf("%d|%s", rec.SiteID, date), fmt.Sprintf("%d", ts.Year())
	case BucketWeekdayWeekend:
		return fmt.Sprintf("%d|%s", rec.SiteID, date), weekendLabel(ts.Weekday())
	}
	// unknown granularity degrades to site-day buckets keyed by date
	return fmt.Sprintf("%d|%s", rec.SiteID, date), date
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%d", hour)
}

func weekendLabel(day time.Weekday) string {
	if day == time.Saturday || day == time.Sunday {
		return "Weekend"
	}
	return "Weekday"
}

var weekdayRank = map[string]int{
	"Sun": 0, "Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6,
}

var monthRank = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// bucketRank orders bucket labels naturally for their granularity
// (numeric hours/years, calendar order for weekdays and months).
func bucketRank(label string, granularity BucketGranularity) int {
	switch granularity {
	case BucketDayOfWeek:
		return weekdayRank[label]
	case BucketMonth:
		return monthRank[label]
	case BucketWeekdayWeekend:
		if label == "Weekday" {
			return 0
		}
		return 1
	default:
		var n int
		fmt.Sscanf(label, "%d", &n)
		return n
	}
}
