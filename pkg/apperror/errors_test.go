package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrConflict, http.StatusBadRequest},
		{ErrInvalidCode, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatus(tt.err), "error %v", tt.err)
	}
}

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(ErrConflict, "username already taken")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "username already taken", err.Error())
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatus(err))

	// The sentinel survives further wrapping.
	wrapped := fmt.Errorf("signup failed: %w", err)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatus(wrapped))
}
