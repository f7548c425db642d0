package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrEmptyResult signals a successful search that matched no videos.
var ErrEmptyResult = errors.New("no videos were found for the specified search")

// ErrorKind classifies a failed search.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindInvalidCredentials
	KindQuotaExceeded
	KindServiceUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "other"
	}
}

// APIError is a classified search failure. Any APIError aborts the whole fetch.
type APIError struct {
	Kind    ErrorKind
	Code    int
	Message string
	err     error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "YouTube API credentials rejected - the API key is not valid, check YOUTUBE_API_KEY"
	case KindQuotaExceeded:
		return "YouTube API quota exceeded - please wait and try again tomorrow"
	case KindServiceUnavailable:
		return "YouTube API temporarily unavailable - please try again later"
	default:
		if e.Message == "" {
			return "YouTube API error - please try again"
		}
		return fmt.Sprintf("YouTube API error: %s", e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.err
}

func otherError(message string, err error) *APIError {
	return &APIError{Kind: KindOther, Message: message, err: err}
}

var (
	credentialReasons = []string{"keyInvalid", "keyExpired", "authError"}
	quotaReasons      = []string{"quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded"}
)

// classify maps the API's error envelope onto an ErrorKind.
func classify(gerr *googleapi.Error) *APIError {
	apiErr := &APIError{Code: gerr.Code, Message: gerr.Message, err: gerr}
	if apiErr.Message == "" && gerr.Code != 0 {
		apiErr.Message = fmt.Sprintf("status %d %s", gerr.Code, http.StatusText(gerr.Code))
	}

	switch {
	case gerr.Code == http.StatusUnauthorized,
		strings.Contains(gerr.Message, "API key not valid"),
		hasReason(gerr, credentialReasons):
		apiErr.Kind = KindInvalidCredentials
	case gerr.Code == http.StatusForbidden && strings.Contains(strings.ToLower(gerr.Message), "quota"),
		gerr.Code == http.StatusTooManyRequests,
		hasReason(gerr, quotaReasons):
		apiErr.Kind = KindQuotaExceeded
	case gerr.Code == http.StatusServiceUnavailable:
		apiErr.Kind = KindServiceUnavailable
	default:
		apiErr.Kind = KindOther
	}
	return apiErr
}

func hasReason(gerr *googleapi.Error, reasons []string) bool {
	for _, item := range gerr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}
