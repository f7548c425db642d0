package youtube

import (
	"fmt"
	"strings"
	"time"
)

// Bounds accepted for SearchParameters.MaxResults.
const (
	MinMaxResults = 5
	MaxMaxResults = 50
)

// SearchParameters describes one keyword search submission.
type SearchParameters struct {
	Query           string
	MaxResults      int
	Order           Order
	PublishedAfter  time.Time
	PublishedBefore time.Time
}

// ValidationError reports input that must be corrected before a search is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DayRange returns the publish window covering start and end as whole UTC days:
// start at 00:00:00 and end at 23:59:59.
func DayRange(start, end time.Time) (after, before time.Time) {
	after = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	before = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
	return after, before
}

// Validate checks the parameters without touching the network.
func (p SearchParameters) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return &ValidationError{Field: "query", Message: "query must not be empty"}
	}
	if p.MaxResults < MinMaxResults || p.MaxResults > MaxMaxResults {
		return &ValidationError{
			Field:   "max_results",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinMaxResults, MaxMaxResults, p.MaxResults),
		}
	}
	if _, err := ParseOrder(string(p.Order)); err != nil {
		return err
	}
	if p.PublishedAfter.After(p.PublishedBefore) {
		return &ValidationError{
			Field:   "date_range",
			Message: "start date must not be after the end date",
		}
	}
	return nil
}
