package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

const dateLayout = "2006-01-02"

// Form field names shared by the HTML form and the CLI.
const (
	FieldQuery      = "query"
	FieldMaxResults = "max_results"
	FieldOrder      = "order"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
)

// Form holds the raw search form values as the user entered them.
type Form struct {
	Query      string
	MaxResults string
	Order      string
	StartDate  string
	EndDate    string
}

// DefaultForm returns the values the search form starts with.
func DefaultForm(now time.Time) Form {
	return Form{
		Query:      "'Streamlit'",
		MaxResults: strconv.Itoa(youtube.MaxMaxResults),
		Order:      string(youtube.OrderDate),
		StartDate:  "2023-01-01",
		EndDate:    now.Format(dateLayout),
	}
}

// FormFromValues reads a submitted form.
func FormFromValues(values url.Values) Form {
	return Form{
		Query:      values.Get(FieldQuery),
		MaxResults: strings.TrimSpace(values.Get(FieldMaxResults)),
		Order:      strings.TrimSpace(values.Get(FieldOrder)),
		StartDate:  strings.TrimSpace(values.Get(FieldStartDate)),
		EndDate:    strings.TrimSpace(values.Get(FieldEndDate)),
	}
}

// FormFromParams renders stored parameters back into form values.
func FormFromParams(p youtube.SearchParameters) Form {
	return Form{
		Query:      p.Query,
		MaxResults: strconv.Itoa(p.MaxResults),
		Order:      string(p.Order),
		StartDate:  p.PublishedAfter.UTC().Format(dateLayout),
		EndDate:    p.PublishedBefore.UTC().Format(dateLayout),
	}
}

// Params converts the form into validated search parameters. Dates after
// today (as of now) are rejected, as is a start date after the end date.
func (f Form) Params(now time.Time) (youtube.SearchParameters, error) {
	maxResults, err := strconv.Atoi(f.MaxResults)
	if err != nil {
		return youtube.SearchParameters{}, &youtube.ValidationError{
			Field:   FieldMaxResults,
			Message: fmt.Sprintf("%q is not a number", f.MaxResults),
		}
	}

	order, err := youtube.ParseOrder(f.Order)
	if err != nil {
		return youtube.SearchParameters{}, err
	}

	start, err := parseDate(FieldStartDate, f.StartDate)
	if err != nil {
		return youtube.SearchParameters{}, err
	}
	end, err := parseDate(FieldEndDate, f.EndDate)
	if err != nil {
		return youtube.SearchParameters{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.After(today) || end.After(today) {
		return youtube.SearchParameters{}, &youtube.ValidationError{
			Field:   "date_range",
			Message: "dates must not be after today",
		}
	}

	after, before := youtube.DayRange(start, end)
	params := youtube.SearchParameters{
		Query:           f.Query,
		MaxResults:      maxResults,
		Order:           order,
		PublishedAfter:  after,
		PublishedBefore: before,
	}
	if err := params.Validate(); err != nil {
		return youtube.SearchParameters{}, err
	}
	return params, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &youtube.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a date (expected YYYY-MM-DD)", value),
		}
	}
	return t, nil
}
