package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

const MaxFullNameLength = 100

// Status is the lifecycle state of a user account.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// ParseStatus accepts the lowercase names, ignoring case and surrounding spaces.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	}
	return "", apperror.With(apperror.ErrValidation, "invalid status %q", s)
}

func (s Status) String() string { return string(s) }

// User is the aggregate root of the user domain.
// Fields are only changed through its methods so UpdatedAt always moves with them.
type User struct {
	id        uuid.UUID
	username  valueobject.Username
	email     valueobject.Email
	fullName  *string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates an active user with a fresh id.
func NewUser(username valueobject.Username, email valueobject.Email, fullName *string) (*User, error) {
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	now := nowUTC()
	return &User{
		id:        uuid.New(),
		username:  username,
		email:     email,
		fullName:  copyString(fullName),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a user loaded from storage. No business rules are re-checked.
func Reconstruct(
	id uuid.UUID,
	username valueobject.Username,
	email valueobject.Email,
	fullName *string,
	status Status,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:        id,
		username:  username,
		email:     email,
		fullName:  copyString(fullName),
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID                  { return u.id }
func (u *User) Username() valueobject.Username { return u.username }
func (u *User) Email() valueobject.Email       { return u.email }
func (u *User) Status() Status                 { return u.status }
func (u *User) CreatedAt() time.Time           { return u.createdAt }
func (u *User) UpdatedAt() time.Time           { return u.updatedAt }
func (u *User) IsActive() bool                 { return u.status == StatusActive }

// FullName returns a copy, nil when unset.
func (u *User) FullName() *string { return copyString(u.fullName) }

func (u *User) Rename(username valueobject.Username) {
	u.username = username
	u.touch()
}

func (u *User) ChangeEmail(email valueobject.Email) {
	u.email = email
	u.touch()
}

// SetFullName replaces the full name; nil clears it.
func (u *User) SetFullName(fullName *string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}
	u.fullName = copyString(fullName)
	u.touch()
	return nil
}

func (u *User) Activate()   { u.ChangeStatus(StatusActive) }
func (u *User) Deactivate() { u.ChangeStatus(StatusInactive) }
func (u *User) Suspend()    { u.ChangeStatus(StatusSuspended) }

func (u *User) ChangeStatus(s Status) {
	u.status = s
	u.touch()
}

func (u *User) touch() {
	now := nowUTC()
	if now.Before(u.createdAt) {
		now = u.createdAt
	}
	u.updatedAt = now
}

// nowUTC is UTC at the precision PostgreSQL timestamptz keeps, so a stored user
// reads back with the same timestamps it was written with.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func validateFullName(fullName *string) error {
	if fullName != nil && utf8.RuneCountInString(*fullName) > MaxFullNameLength {
		return apperror.With(apperror.ErrValidation, "full name cannot exceed %d characters", MaxFullNameLength)
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
