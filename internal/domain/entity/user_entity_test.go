package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

func ptr(s string) *string { return &s }

func newUser(t *testing.T) *entity.User {
	t.Helper()
	un, err := valueobject.NewUsername("johndoe")
	require.NoError(t, err)
	em, err := valueobject.NewEmail("john@example.com")
	require.NoError(t, err)
	u, err := entity.NewUser(un, em, ptr("John Doe"))
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newUser(t)

	require.NotEqual(t, uuid.Nil, u.ID())
	require.Equal(t, entity.StatusActive, u.Status())
	require.True(t, u.IsActive())
	require.Equal(t, u.CreatedAt(), u.UpdatedAt())
	require.Equal(t, "John Doe", *u.FullName())
}

func TestNewUser_FullNameTooLong(t *testing.T) {
	un, _ := valueobject.NewUsername("johndoe")
	em, _ := valueobject.NewEmail("john@example.com")

	_, err := entity.NewUser(un, em, ptr(strings.Repeat("x", 101)))
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = entity.NewUser(un, em, ptr(strings.Repeat("x", 100)))
	require.NoError(t, err)
}

func TestNewUser_DistinctIDs(t *testing.T) {
	require.NotEqual(t, newUser(t).ID(), newUser(t).ID())
}

func TestMutatorsBumpUpdatedAt(t *testing.T) {
	mutations := map[string]func(u *entity.User){
		"rename": func(u *entity.User) {
			un, _ := valueobject.NewUsername("janedoe")
			u.Rename(un)
		},
		"change email": func(u *entity.User) {
			em, _ := valueobject.NewEmail("jane@example.com")
			u.ChangeEmail(em)
		},
		"set full name": func(u *entity.User) { _ = u.SetFullName(ptr("Jane")) },
		"clear full name": func(u *entity.User) { _ = u.SetFullName(nil) },
		"activate":        func(u *entity.User) { u.Activate() },
		"deactivate":      func(u *entity.User) { u.Deactivate() },
		"suspend":         func(u *entity.User) { u.Suspend() },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			u := newUser(t)
			created := u.CreatedAt()
			before := u.UpdatedAt()
			time.Sleep(time.Millisecond)

			mutate(u)

			require.True(t, u.UpdatedAt().After(before), "updated_at should move forward")
			require.Equal(t, created, u.CreatedAt())
			require.False(t, u.UpdatedAt().Before(u.CreatedAt()))
			require.Equal(t, u.UpdatedAt(), u.UpdatedAt().Truncate(time.Microsecond))
		})
	}
}

func TestTimestampsFitStoragePrecision(t *testing.T) {
	u := newUser(t)
	require.Equal(t, time.UTC, u.CreatedAt().Location())
	require.Equal(t, u.CreatedAt(), u.CreatedAt().Truncate(time.Microsecond))
	require.Equal(t, u.UpdatedAt(), u.UpdatedAt().Truncate(time.Microsecond))
}

func TestStatusTransitions(t *testing.T) {
	u := newUser(t)

	u.Suspend()
	require.Equal(t, entity.StatusSuspended, u.Status())
	require.False(t, u.IsActive())

	u.Deactivate()
	require.Equal(t, entity.StatusInactive, u.Status())

	u.Activate()
	require.True(t, u.IsActive())
}

func TestSetFullName_TooLongKeepsOldValue(t *testing.T) {
	u := newUser(t)
	before := u.UpdatedAt()

	err := u.SetFullName(ptr(strings.Repeat("y", 101)))
	require.ErrorIs(t, err, apperror.ErrValidation)
	require.Equal(t, "John Doe", *u.FullName())
	require.Equal(t, before, u.UpdatedAt())
}

func TestFullNameIsCopied(t *testing.T) {
	u := newUser(t)
	name := u.FullName()
	*name = "changed"
	require.Equal(t, "John Doe", *u.FullName())
}

func TestReconstruct(t *testing.T) {
	id := uuid.New()
	un, _ := valueobject.NewUsername("johndoe")
	em, _ := valueobject.NewEmail("john@example.com")
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	u := entity.Reconstruct(id, un, em, nil, entity.StatusSuspended, created, updated)

	require.Equal(t, id, u.ID())
	require.Nil(t, u.FullName())
	require.Equal(t, entity.StatusSuspended, u.Status())
	require.Equal(t, created, u.CreatedAt())
	require.Equal(t, updated, u.UpdatedAt())
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]entity.Status{
		"active":     entity.StatusActive,
		"INACTIVE":   entity.StatusInactive,
		" suspended": entity.StatusSuspended,
	} {
		got, err := entity.ParseStatus(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := entity.ParseStatus("banned")
	require.ErrorIs(t, err, apperror.ErrValidation)
}
