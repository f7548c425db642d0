// Package aggregator derives upload statistics from a search result set.
//
// This package enables contentmix to:
// - Bucket videos by calendar day in a fixed target timezone
// - Report per-day upload counts and day-over-day differences
// - Report the total number of uploads behind the bar chart
package aggregator

import "time"

// DefaultTimezone is the target timezone used for day bucketing.
const DefaultTimezone = "America/New_York"

// DailyUploadCount is the number of uploads on one calendar day.
type DailyUploadCount struct {
	Date                 time.Time `json:"date"`
	Count                int       `json:"count"`
	DeltaFromPreviousDay int       `json:"delta_from_previous_day"`
}

// Summary is the derived chart data for a result set.
type Summary struct {
	Total    int                `json:"total"`
	Daily    []DailyUploadCount `json:"daily"`
	Location *time.Location     `json:"-"`
}

// MaxCount returns the largest daily count, or 0 for an empty summary.
func (s Summary) MaxCount() int {
	highest := 0
	for _, d := range s.Daily {
		if d.Count > highest {
			highest = d.Count
		}
	}
	return highest
}
