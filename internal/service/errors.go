package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sk408/yt-fix/internal/models"
)

// InvalidIdentifierError reports a malformed channel ID, playlist ID, or
// playlist URL. It is never retried and always surfaces before any network
// call, with the offending input echoed.
type InvalidIdentifierError struct {
	Input  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Reason)
}

// UpstreamQuotaError reports a quota or authorization failure from the
// upstream API (invalid or exhausted API key). It is never retried and is
// kept distinct from FetchError so callers can present an actionable message.
type UpstreamQuotaError struct {
	Err error
}

func (e *UpstreamQuotaError) Error() string {
	return fmt.Sprintf("upstream quota/authorization failure: %v", e.Err)
}

func (e *UpstreamQuotaError) Unwrap() error { return e.Err }

// FetchError reports an upstream failure after the single-retry policy was
// exhausted. Partial carries the records recovered before the failure; the
// caller decides whether partial data is acceptable.
type FetchError struct {
	Partial []models.VideoRecord
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed after retry (%d videos recovered): %v", len(e.Partial), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsRetryable reports whether an upstream error may be retried. Quota and
// identifier errors are permanent, as are context cancellations.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var invalidErr *InvalidIdentifierError
	if errors.As(err, &invalidErr) {
		return false
	}
	var quotaErr *UpstreamQuotaError
	return !errors.As(err, &quotaErr)
}
