package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v82/github"
)

// FetchError reports a failed trending fetch. Status is the HTTP status when
// the API answered, 0 when it could not be reached.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch trending repositories: status %d: %v", e.Status, e.Err)
	}

	return fmt.Sprintf("fetch trending repositories: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(err error) *FetchError {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &FetchError{
			Status: statusOf(rateLimitErr.Response),
			Err: fmt.Errorf("rate limit exceeded, resets at %s: %w",
				rateLimitErr.Rate.Reset.Time.Format("15:04:05"), err),
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &FetchError{Status: statusOf(abuseErr.Response), Err: err}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		return &FetchError{Status: statusOf(respErr.Response), Err: err}
	}

	return &FetchError{Err: err}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}

	return resp.StatusCode
}

// transient reports whether a retry could succeed.
func (e *FetchError) transient() bool {
	switch e.Status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	case 0:
		return !errors.Is(e.Err, context.Canceled) && !errors.Is(e.Err, context.DeadlineExceeded)
	default:
		return false
	}
}
