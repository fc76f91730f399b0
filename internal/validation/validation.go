// Package validation holds the field-level invariants that do not fit
// request-binding tags: they are checked after permissions and before
// persistence.
package validation

import (
	"fmt"
	"regexp"
	"time"

	"anoa.com/yamdbreview/pkg/apperror"
)

const (
	MinScore = 1
	MaxScore = 10

	// ReservedUsername collides with the /users/me route.
	ReservedUsername = "me"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)

// ValidateScore checks the [1,10] review score range.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return apperror.Wrap(apperror.ErrInvalidInput,
			fmt.Sprintf("score must be between %d and %d, got %d", MinScore, MaxScore, score))
	}
	return nil
}

// ValidateTitleYear rejects release years in the future, evaluated
// against the current calendar year.
func ValidateTitleYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return apperror.Wrap(apperror.ErrInvalidInput,
			fmt.Sprintf("year %d is after the current year %d", year, current))
	}
	return nil
}

// ValidateUsername enforces the username charset and the reserved "me".
func ValidateUsername(username string) error {
	if username == ReservedUsername {
		return apperror.Wrap(apperror.ErrInvalidInput,
			fmt.Sprintf("username %q is reserved", ReservedUsername))
	}
	if !usernamePattern.MatchString(username) {
		return apperror.Wrap(apperror.ErrInvalidInput,
			"username may only contain letters, digits and _.@+-")
	}
	return nil
}
