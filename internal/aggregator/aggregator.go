package aggregator

import (
	"fmt"
	"sort"
	"time"
	_ "time/tzdata" // target timezone must resolve on hosts without zoneinfo

	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

// Aggregator buckets video records by day in its target timezone.
type Aggregator struct {
	loc *time.Location
}

// New creates an Aggregator for the given target timezone.
func New(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

// LoadLocation resolves an IANA timezone name, defaulting to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Aggregate returns the total and one DailyUploadCount per day that has at
// least one upload, ordered by date. Gaps are not zero-filled.
func (a *Aggregator) Aggregate(records []youtube.VideoRecord) Summary {
	counts := make(map[time.Time]int)
	for _, r := range records {
		local := r.PublishDate.In(a.loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
		counts[day]++
	}

	days := make([]time.Time, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	daily := make([]DailyUploadCount, 0, len(days))
	for i, day := range days {
		entry := DailyUploadCount{Date: day, Count: counts[day]}
		if i > 0 {
			entry.DeltaFromPreviousDay = entry.Count - daily[i-1].Count
		}
		daily = append(daily, entry)
	}

	return Summary{
		Total:    len(records),
		Daily:    daily,
		Location: a.loc,
	}
}
