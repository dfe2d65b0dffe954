package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{CodeInvalidDistribution, http.StatusBadRequest},
		{CodeUnknownPolicy, http.StatusBadRequest},
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeProfileNotFound, http.StatusNotFound},
		{CodeRecipeNotFound, http.StatusNotFound},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAppError(tt.code, "msg", "")
			assert.Equal(t, tt.expected, err.StatusCode())
		})
	}
}

func TestWrap_PreservesAppErrorThroughFmtWrapping(t *testing.T) {
	inner := NewProfileNotFoundError("abc")
	wrapped := fmt.Errorf("loading profile: %w", inner)

	got := Wrap(wrapped, "ignored")

	require.NotNil(t, got)
	assert.Equal(t, CodeProfileNotFound, got.Code)
	assert.True(t, Is(wrapped, CodeProfileNotFound))
	assert.Equal(t, CodeProfileNotFound, GetCode(wrapped))
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	cause := stderrors.New("boom")

	got := Wrap(cause, "planning failed")

	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestNewInvalidDistributionError_KeepsCause(t *testing.T) {
	cause := stderrors.New("weights sum to zero")

	err := NewInvalidDistributionError(cause)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.ErrorIs(t, err, cause)
}

func TestToErrorResponse(t *testing.T) {
	err := NewUnknownPolicyError("brunch_heavy")

	resp := ToErrorResponse(err, "req-1")

	assert.Equal(t, CodeUnknownPolicy, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "brunch_heavy", resp.Error.Metadata["policy"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
