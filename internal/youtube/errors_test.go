package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/sk408/yt-fix/internal/service"
)

func apiError(code int, reason string) *googleapi.Error {
	return &googleapi.Error{
		Code:    code,
		Message: "upstream says no",
		Errors:  []googleapi.ErrorItem{{Reason: reason}},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantQuota bool
		wantInput bool
	}{
		{
			name:      "quota exceeded",
			err:       apiError(http.StatusForbidden, "quotaExceeded"),
			wantQuota: true,
		},
		{
			name:      "daily limit exceeded",
			err:       apiError(http.StatusForbidden, "dailyLimitExceeded"),
			wantQuota: true,
		},
		{
			name: "per-second rate limit stays transient",
			err:  apiError(http.StatusForbidden, "rateLimitExceeded"),
		},
		{
			name: "per-user rate limit stays transient",
			err:  apiError(http.StatusForbidden, "userRateLimitExceeded"),
		},
		{
			name:      "invalid API key",
			err:       apiError(http.StatusBadRequest, "keyInvalid"),
			wantQuota: true,
		},
		{
			name:      "unauthorized",
			err:       apiError(http.StatusUnauthorized, "authError"),
			wantQuota: true,
		},
		{
			name:      "malformed request parameter",
			err:       apiError(http.StatusBadRequest, "invalidChannelId"),
			wantInput: true,
		},
		{
			name:      "not found",
			err:       apiError(http.StatusNotFound, "playlistNotFound"),
			wantInput: true,
		},
		{
			name: "server error stays transient",
			err:  apiError(http.StatusInternalServerError, "backendError"),
		},
		{
			name: "non-API error passes through",
			err:  errors.New("connection reset"),
		},
		{
			name:      "wrapped API error still classified",
			err:       fmt.Errorf("call failed: %w", apiError(http.StatusForbidden, "quotaExceeded")),
			wantQuota: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tt.err, "some-input")
			require.Error(t, got)

			var quotaErr *service.UpstreamQuotaError
			var invalidErr *service.InvalidIdentifierError
			assert.Equal(t, tt.wantQuota, errors.As(got, &quotaErr))
			assert.Equal(t, tt.wantInput, errors.As(got, &invalidErr))

			if tt.wantInput {
				assert.Equal(t, "some-input", invalidErr.Input)
			}
			if !tt.wantQuota && !tt.wantInput {
				assert.True(t, service.IsRetryable(got), "transient errors must stay retryable")
			}
		})
	}
}

func TestClassifyPreservesCause(t *testing.T) {
	t.Parallel()

	cause := apiError(http.StatusForbidden, "quotaExceeded")
	got := classify(cause, "UCabc")

	var apiErr *googleapi.Error
	require.True(t, errors.As(got, &apiErr), "original API error must stay unwrappable")
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}
