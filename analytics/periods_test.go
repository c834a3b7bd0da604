package analytics

import (
	"testing"
	"time"

	"counts-server/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDetectPeriods_DailyGaps(t *testing.T) {
	dates := []time.Time{
		day(2022, time.June, 1),
		day(2022, time.June, 2),
		day(2022, time.June, 8),
		day(2022, time.June, 9),
	}
	refStart := day(2022, time.January, 1)
	refEnd := day(2022, time.December, 31)

	periods := DetectPeriods(dates, refStart, refEnd, DefaultGapConfig())

	if len(periods) != 2 {
		t.Fatalf("Expected 2 periods, got %d", len(periods))
	}
	if !periods[0].Start.Equal(day(2022, time.June, 1)) || !periods[0].End.Equal(day(2022, time.June, 2)) {
		t.Errorf("First period wrong: %v - %v", periods[0].Start, periods[0].End)
	}
	if !periods[1].Start.Equal(day(2022, time.June, 8)) || !periods[1].End.Equal(day(2022, time.June, 9)) {
		t.Errorf("Second period wrong: %v - %v", periods[1].Start, periods[1].End)
	}
}

func TestDetectPeriods_DailyGapAtThreshold(t *testing.T) {
	// a 3-day gap does not split; only gaps exceeding the threshold do
	dates := []time.Time{
		day(2022, time.June, 1),
		day(2022, time.June, 4),
	}
	periods := DetectPeriods(dates, day(2022, time.January, 1), day(2022, time.December, 31), DefaultGapConfig())

	if len(periods) != 1 {
		t.Fatalf("Expected 1 period, got %d", len(periods))
	}
}

func TestDetectPeriods_WeeklyGranularityForLongSpans(t *testing.T) {
	// reference span over 2 years switches to ISO-week buckets, where
	// consecutive-ish weeks merge into one period
	dates := []time.Time{
		day(2020, time.March, 2),
		day(2020, time.March, 16), // 2 weeks later: within threshold
		day(2020, time.June, 1),   // many weeks later: new period
	}
	refStart := day(2019, time.January, 1)
	refEnd := day(2023, time.December, 31)

	periods := DetectPeriods(dates, refStart, refEnd, DefaultGapConfig())

	if len(periods) != 2 {
		t.Fatalf("Expected 2 periods, got %d", len(periods))
	}
	if !periods[0].End.Equal(day(2020, time.March, 16)) {
		t.Errorf("First period should extend to Mar 16, got %v", periods[0].End)
	}
}

func TestDetectPeriods_EmptyInput(t *testing.T) {
	periods := DetectPeriods(nil, day(2022, time.January, 1), day(2022, time.December, 31), DefaultGapConfig())
	if len(periods) != 0 {
		t.Errorf("Expected no periods for empty input, got %d", len(periods))
	}
}

func TestNormalizePeriods_BoundaryClamp(t *testing.T) {
	refStart := day(2022, time.January, 1)
	refEnd := day(2022, time.December, 31)

	before := []models.DataPeriod{{Start: day(2021, time.March, 1), End: day(2021, time.April, 1)}}
	after := []models.DataPeriod{{Start: day(2023, time.March, 1), End: day(2023, time.April, 1)}}

	outBefore := NormalizePeriods(before, refStart, refEnd, 0.5)
	outAfter := NormalizePeriods(after, refStart, refEnd, 0.5)

	if outBefore[0].Start != 0 {
		t.Errorf("Period before span should clamp start to 0, got %v", outBefore[0].Start)
	}
	if outAfter[0].End != 100 {
		t.Errorf("Period after span should clamp end to 100, got %v", outAfter[0].End)
	}
	for _, p := range append(outBefore, outAfter...) {
		if p.Start < 0 || p.End > 100 {
			t.Errorf("Normalized period out of range: %+v", p)
		}
		if p.End <= p.Start {
			t.Errorf("Expected end > start, got %+v", p)
		}
	}
}

func TestNormalizePeriods_SingleDayGetsMinimumWidth(t *testing.T) {
	refStart := day(2022, time.January, 1)
	refEnd := day(2022, time.December, 31)
	single := []models.DataPeriod{{Start: day(2022, time.June, 15), End: day(2022, time.June, 15)}}

	out := NormalizePeriods(single, refStart, refEnd, 0.5)

	if len(out) != 1 {
		t.Fatalf("Expected 1 normalized period, got %d", len(out))
	}
	if out[0].End-out[0].Start < 0.5 {
		t.Errorf("Expected minimum width 0.5, got %v", out[0].End-out[0].Start)
	}
}

func TestNormalizePeriods_SingleDayAtSpanEnd(t *testing.T) {
	refStart := day(2022, time.January, 1)
	refEnd := day(2022, time.December, 31)
	single := []models.DataPeriod{{Start: refEnd, End: refEnd}}

	out := NormalizePeriods(single, refStart, refEnd, 0.5)

	if out[0].End != 100 {
		t.Errorf("Expected end pinned at 100, got %v", out[0].End)
	}
	if out[0].End-out[0].Start < 0.5 {
		t.Errorf("Expected minimum width preserved at the boundary, got %v", out[0].End-out[0].Start)
	}
}
