package valueobject

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

const MaxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, lower-cased email address.
type Email struct {
	value string
}

// NewEmail trims and lower-cases raw before validating it.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, apperror.With(apperror.ErrValidation, "email cannot be empty")
	}
	if utf8.RuneCountInString(v) > MaxEmailLength {
		return Email{}, apperror.With(apperror.ErrValidation, "email cannot exceed %d characters", MaxEmailLength)
	}
	if !emailPattern.MatchString(v) {
		return Email{}, apperror.With(apperror.ErrValidation, "invalid email format")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

// LocalPart returns the part before "@".
func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

// Domain returns the part after "@".
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

func (e Email) Equal(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
