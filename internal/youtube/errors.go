package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/sk408/yt-fix/internal/service"
)

// classify maps raw API errors onto the pipeline's typed errors: quota and
// key failures become UpstreamQuotaError (never retried), not-found becomes
// InvalidIdentifierError, and everything else is left transient.
func classify(err error, input string) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusForbidden:
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "rateLimitExceeded", "userRateLimitExceeded":
				// Per-second rate limiting is transient, unlike the
				// daily quota.
				return err
			}
		}
		return &service.UpstreamQuotaError{Err: err}
	case http.StatusBadRequest:
		for _, item := range apiErr.Errors {
			if item.Reason == "keyInvalid" {
				return &service.UpstreamQuotaError{Err: err}
			}
		}
		return &service.InvalidIdentifierError{Input: input, Reason: apiErr.Message}
	case http.StatusUnauthorized:
		return &service.UpstreamQuotaError{Err: err}
	case http.StatusNotFound:
		return &service.InvalidIdentifierError{
			Input:  input,
			Reason: fmt.Sprintf("not found upstream: %s", apiErr.Message),
		}
	}
	return err
}
