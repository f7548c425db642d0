// Package dashboard ties the search pipeline to a session.
//
// Two events change session state: a search submission (Submit) and a
// pagination transition, which only changes the page number carried in the
// address. Rendering is a pure function of the session snapshot, the form and
// the page number (BuildView); it never fetches.
package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
	"github.com/gauthierbraillon/contentmix/internal/session"
	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

// Searcher fetches every raw item for a search.
type Searcher interface {
	FetchAll(ctx context.Context, params youtube.SearchParameters) ([]youtube.RawItem, error)
}

// Outcome is the result of one submission.
type Outcome int

const (
	OutcomeResults Outcome = iota
	OutcomeEmpty
	OutcomeInvalid
	OutcomeFailed
)

// Level of a notice shown to the user.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notice is a user-visible message.
type Notice struct {
	Level   string
	Message string
}

// SubmitResult reports what a submission did.
type SubmitResult struct {
	Outcome Outcome
	Count   int
	Notice  *Notice
	Err     error
}

// Service runs submissions and builds views.
type Service struct {
	searcher Searcher
	agg      *aggregator.Aggregator
	pageSize int
}

// NewService creates a dashboard service.
func NewService(searcher Searcher, agg *aggregator.Aggregator, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Service{searcher: searcher, agg: agg, pageSize: pageSize}
}

// PageSize returns the number of videos per gallery page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Submit validates params, fetches and normalizes the result set and stores
// it in state. Invalid parameters leave state untouched and never reach the
// network. Failed and empty searches leave the session with no result set.
func (s *Service) Submit(ctx context.Context, state *session.State, params youtube.SearchParameters) SubmitResult {
	if err := params.Validate(); err != nil {
		return SubmitResult{Outcome: OutcomeInvalid, Notice: errorNotice(err), Err: err}
	}

	items, err := s.searcher.FetchAll(ctx, params)
	if err != nil {
		state.Clear(params)
		logFailure(params, err)
		return SubmitResult{Outcome: OutcomeFailed, Notice: errorNotice(err), Err: err}
	}

	records, err := youtube.Normalize(items)
	if errors.Is(err, youtube.ErrEmptyResult) {
		state.Clear(params)
		slog.Info("search returned no videos", slog.String("query", params.Query))
		return SubmitResult{
			Outcome: OutcomeEmpty,
			Notice:  &Notice{Level: LevelInfo, Message: UserMessage(err)},
		}
	}
	if err != nil {
		state.Clear(params)
		logFailure(params, err)
		return SubmitResult{Outcome: OutcomeFailed, Notice: errorNotice(err), Err: err}
	}

	state.Replace(params, records)
	slog.Info("search stored",
		slog.String("query", params.Query),
		slog.String("order", string(params.Order)),
		slog.Int("videos", len(records)))
	return SubmitResult{Outcome: OutcomeResults, Count: len(records)}
}

// UserMessage converts a submission error into the text shown to the user.
func UserMessage(err error) string {
	var vErr *youtube.ValidationError
	if errors.As(err, &vErr) {
		if vErr.Field == "date_range" {
			return "Invalid date range. Please ensure the start date is earlier than the end date and not in the future."
		}
		return "Invalid search: " + vErr.Error()
	}

	if errors.Is(err, youtube.ErrEmptyResult) {
		return "No videos were found for the specified date range."
	}

	var apiErr *youtube.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case youtube.KindInvalidCredentials:
			return "The provided API key is not valid. Please check your API key."
		case youtube.KindQuotaExceeded:
			return "API rate limit exceeded. Please wait and try again tomorrow."
		case youtube.KindServiceUnavailable:
			return "The API is temporarily unavailable. Please try again later."
		default:
			return "An error occurred while fetching videos: " + apiErr.Message
		}
	}

	return "An error occurred while fetching videos: " + err.Error()
}

func errorNotice(err error) *Notice {
	return &Notice{Level: LevelError, Message: UserMessage(err)}
}

func logFailure(params youtube.SearchParameters, err error) {
	kind := youtube.KindOther
	var apiErr *youtube.APIError
	if errors.As(err, &apiErr) {
		kind = apiErr.Kind
	}
	slog.Warn("search failed",
		slog.String("query", params.Query),
		slog.String("kind", kind.String()),
		slog.Any("error", err))
}
