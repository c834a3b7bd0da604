package analytics

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// HourProfile maps hour-of-day (0-23) to the multiplier that expands a
// single observed hour up to a full-day estimate.
type HourProfile map[int]float64

// DayFactors maps weekday names ("Mon".."Sun") to the normalization
// multiplier correcting an atypical sampled day toward an annual average.
type DayFactors map[string]float64

// FactorCache holds the named expansion profiles and normalization factor
// tables. It is owned by the caller and passed explicitly into the
// expansion service; Initialize/Clear make its lifecycle auditable instead
// of hiding a process-wide memo.
type FactorCache struct {
	mu            sync.RWMutex
	expansion     map[string]HourProfile
	normalization map[string]DayFactors
}

// NewFactorCache returns an empty, uninitialized cache.
func NewFactorCache() *FactorCache {
	return &FactorCache{}
}

// Initialize loads the named factor tables, replacing any previous content.
// Expansion profile hours arrive keyed as strings ("0".."23") because that
// is how the JSON resources are shaped.
func (c *FactorCache) Initialize(expansion map[string]map[string]float64, normalization map[string]map[string]float64) error {
	exp := make(map[string]HourProfile, len(expansion))
	for key, hours := range expansion {
		profile := make(HourProfile, len(hours))
		for hourStr, factor := range hours {
			hour, err := strconv.Atoi(hourStr)
			if err != nil || hour < 0 || hour > 23 {
				return fmt.Errorf("expansion profile %q has invalid hour key %q", key, hourStr)
			}
			profile[hour] = factor
		}
		exp[key] = profile
	}

	norm := make(map[string]DayFactors, len(normalization))
	for key, days := range normalization {
		factors := make(DayFactors, len(days))
		for day, factor := range days {
			factors[day] = factor
		}
		norm[key] = factors
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.expansion = exp
	c.normalization = norm
	return nil
}

// Clear drops all loaded tables. Subsequent lookups fail until the next
// Initialize.
func (c *FactorCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expansion = nil
	c.normalization = nil
}

// HourFactor returns the expansion multiplier for the given profile and
// hour. A missing profile or hour is an error the caller is expected to
// treat as a per-record skip, never a batch abort.
func (c *FactorCache) HourFactor(profileKey string, hour int) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.expansion[profileKey]
	if !ok {
		return 0, fmt.Errorf("unknown expansion profile %q", profileKey)
	}
	factor, ok := profile[hour]
	if !ok {
		return 0, fmt.Errorf("expansion profile %q has no factor for hour %d", profileKey, hour)
	}
	return factor, nil
}

// DayFactor returns the normalization multiplier for the given table and
// weekday.
func (c *FactorCache) DayFactor(tableKey string, weekday time.Weekday) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	table, ok := c.normalization[tableKey]
	if !ok {
		return 0, fmt.Errorf("unknown normalization factor table %q", tableKey)
	}
	day := weekday.String()[:3]
	factor, ok := table[day]
	if !ok {
		return 0, fmt.Errorf("normalization table %q has no factor for %s", tableKey, day)
	}
	return factor, nil
}
