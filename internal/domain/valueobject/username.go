// Package valueobject holds the immutable, self-validating values a User is
// built from. Construction is the only place their rules are checked.
package valueobject

import (
	"regexp"

	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Username is case sensitive and kept exactly as given.
type Username struct {
	value string
}

func NewUsername(raw string) (Username, error) {
	if len(raw) < MinUsernameLength || len(raw) > MaxUsernameLength {
		return Username{}, apperror.With(apperror.ErrValidation,
			"username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernamePattern.MatchString(raw) {
		return Username{}, apperror.With(apperror.ErrValidation,
			"username can only contain letters, numbers, underscores, and hyphens")
	}
	return Username{value: raw}, nil
}

func (u Username) String() string { return u.value }

func (u Username) Equal(other Username) bool { return u.value == other.value }

func (u Username) IsZero() bool { return u.value == "" }
