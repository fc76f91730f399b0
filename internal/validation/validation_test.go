package validation

import (
	"testing"
	"time"

	"anoa.com/yamdbreview/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestValidateScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, ValidateScore(score), "score %d should be valid", score)
	}

	for _, score := range []int{0, -1, 11, 100} {
		err := ValidateScore(score)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "score %d should be rejected", score)
	}
}

func TestValidateTitleYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, ValidateTitleYear(current))
	assert.NoError(t, ValidateTitleYear(current-1))
	assert.NoError(t, ValidateTitleYear(1895))

	err := ValidateTitleYear(current + 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_42", "user.name", "a@b", "x+y", "dash-ed", "ME", "Me"}
	for _, username := range valid {
		assert.NoError(t, ValidateUsername(username), "username %q should be valid", username)
	}

	invalid := []string{"me", "white space", "semi;colon", "слэш", "звезда*", ""}
	for _, username := range invalid {
		err := ValidateUsername(username)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "username %q should be rejected", username)
	}
}
