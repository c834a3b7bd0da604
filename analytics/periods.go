package analytics

import (
	"sort"
	"time"

	"counts-server/config"
	"counts-server/models"
)

// GapConfig tunes data-period detection. The defaults mirror the exporter's
// observed behavior; the thresholds are parameters because their original
// tuning rationale is undocumented.
type GapConfig struct {
	DailyGapDays          int
	WeeklyGapWeeks        int
	WeeklySwitchoverYears int
	MinWidthPercent       float64
}

// DefaultGapConfig returns the standard thresholds: 3-day gaps at daily
// granularity, 2-week gaps at weekly, weekly kicking in for reference spans
// over 2 years.
func DefaultGapConfig() GapConfig {
	return GapConfig{
		DailyGapDays:          config.GAP_DAILY_THRESHOLD_DAYS,
		WeeklyGapWeeks:        config.GAP_WEEKLY_THRESHOLD_WEEKS,
		WeeklySwitchoverYears: config.GAP_WEEKLY_SWITCHOVER_YEARS,
		MinWidthPercent:       config.MIN_DATA_PERIOD_WIDTH_PERCENT,
	}
}

// DetectPeriods partitions a site's count dates into contiguous data
// periods. Granularity follows the reference span, not the data: spans over
// the switchover use ISO-week buckets, everything else daily. An empty date
// list yields zero periods.
func DetectPeriods(dates []time.Time, refStart, refEnd time.Time, cfg GapConfig) []models.DataPeriod {
	if len(dates) == 0 {
		return nil
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	weekly := refStart.AddDate(cfg.WeeklySwitchoverYears, 0, 0).Before(refEnd)

	bucketOf := dayIndex
	threshold := cfg.DailyGapDays
	if weekly {
		bucketOf = weekIndex
		threshold = cfg.WeeklyGapWeeks
	}

	var periods []models.DataPeriod
	current := models.DataPeriod{Start: sorted[0], End: sorted[0]}
	prevBucket := bucketOf(sorted[0])

	for _, d := range sorted[1:] {
		bucket := bucketOf(d)
		if bucket-prevBucket > threshold {
			periods = append(periods, current)
			current = models.DataPeriod{Start: d, End: d}
		} else {
			current.End = d
		}
		prevBucket = bucket
	}
	periods = append(periods, current)
	return periods
}

// NormalizePeriods scales periods into 0-100 percent offsets within the
// reference span, clamped at the boundaries. A degenerate (single-day)
// period is widened to the minimum width so it still renders as a bar.
func NormalizePeriods(periods []models.DataPeriod, refStart, refEnd time.Time, minWidthPercent float64) []models.NormalizedPeriod {
	span := refEnd.Sub(refStart)
	if span <= 0 {
		return nil
	}

	out := make([]models.NormalizedPeriod, 0, len(periods))
	for _, p := range periods {
		start := clampPercent(float64(p.Start.Sub(refStart)) / float64(span) * 100)
		end := clampPercent(float64(p.End.Sub(refStart)) / float64(span) * 100)

		if end-start < minWidthPercent {
			end = start + minWidthPercent
			if end > 100 {
				end = 100
				start = end - minWidthPercent
				if start < 0 {
					start = 0
				}
			}
		}
		out = append(out, models.NormalizedPeriod{Start: start, End: end})
	}
	return out
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func dayIndex(t time.Time) int {
	return int(t.UTC().Unix() / 86400)
}

// weekIndex returns a monotonically increasing ISO-week counter so gaps can
// be measured in whole weeks across year boundaries.
func weekIndex(t time.Time) int {
	// count Mondays since the Unix epoch (1970-01-01 was a Thursday)
	days := dayIndex(t)
	return (days + 3) / 7
}
