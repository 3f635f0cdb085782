package application_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/go-ddd-user-service/internal/application"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
	mockrepository "github.com/oksasatya/go-ddd-user-service/internal/domain/repository/mock"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

func ptr(s string) *string { return &s }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newService(t *testing.T) (*application.Service, *mockrepository.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := mockrepository.NewMockUserRepository(ctrl)
	return application.NewService(r, nil, quietLogger()), r
}

func mustUser(t *testing.T, username, email string) *entity.User {
	t.Helper()
	un, err := valueobject.NewUsername(username)
	require.NoError(t, err)
	em, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u, err := entity.NewUser(un, em, nil)
	require.NoError(t, err)
	return u
}

func TestCreateUser_Success(t *testing.T) {
	svc, r := newService(t)
	ctx := context.Background()

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	u, err := svc.CreateUser(ctx, application.CreateUserInput{
		Username: "johndoe",
		Email:    "JOHN@Example.com",
		FullName: ptr("John Doe"),
	})
	require.NoError(t, err)
	require.Equal(t, "johndoe", u.Username().String())
	require.Equal(t, "john@example.com", u.Email().String())
	require.Equal(t, "John Doe", *u.FullName())
	require.Equal(t, entity.StatusActive, u.Status())
	require.Equal(t, u.CreatedAt(), u.UpdatedAt())
}

func TestCreateUser_DuplicateUsernameDoesNotInsert(t *testing.T) {
	svc, r := newService(t)

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(true, nil)
	// no EmailExists or Create expected

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{
		Username: "johndoe",
		Email:    "john2@example.com",
	})
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestCreateUser_DuplicateEmailDoesNotInsert(t *testing.T) {
	svc, r := newService(t)

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().EmailExists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e valueobject.Email) (bool, error) {
			require.Equal(t, "john@example.com", e.String())
			return true, nil
		})

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{
		Username: "johndoe2",
		Email:    "John@Example.com",
	})
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestCreateUser_InvalidInputSkipsRepository(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{Username: "ab", Email: "john@example.com"})
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.CreateUser(context.Background(), application.CreateUserInput{Username: "johndoe", Email: "invalid-email"})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateUser_StoreConflictPassesThrough(t *testing.T) {
	svc, r := newService(t)

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(apperror.With(apperror.ErrAlreadyExists, "username already exists"))

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{Username: "johndoe", Email: "john@example.com"})
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestCreateUser_RepositoryFailureIsInfrastructure(t *testing.T) {
	svc, r := newService(t)
	boom := errors.New("connection reset")

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, boom)

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{Username: "johndoe", Email: "john@example.com"})
	require.ErrorIs(t, err, apperror.ErrInfrastructure)
	require.ErrorIs(t, err, boom)
}

func TestGetUser(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	got, err := svc.GetUser(context.Background(), u.ID())
	require.NoError(t, err)
	require.Equal(t, u.ID(), got.ID())

	missing := uuid.New()
	r.EXPECT().FindByID(gomock.Any(), missing).Return(nil, nil)
	_, err = svc.GetUser(context.Background(), missing)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetUserByUsername(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByUsername(gomock.Any(), u.Username()).Return(u, nil)
	got, err := svc.GetUserByUsername(context.Background(), "johndoe")
	require.NoError(t, err)
	require.Equal(t, u.ID(), got.ID())

	r.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err = svc.GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.GetUserByUsername(context.Background(), "x")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateUser_FullNameOnlySkipsUniquenessChecks(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")
	before := u.UpdatedAt()

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().Update(gomock.Any(), u).Return(nil)

	got, err := svc.UpdateUser(context.Background(), u.ID(), application.UpdateUserInput{FullName: ptr("Johnny")})
	require.NoError(t, err)
	require.Equal(t, "Johnny", *got.FullName())
	require.False(t, got.UpdatedAt().Before(before))
}

func TestUpdateUser_EmptyFullNameClears(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")
	require.NoError(t, u.SetFullName(ptr("John")))

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().Update(gomock.Any(), u).Return(nil)

	got, err := svc.UpdateUser(context.Background(), u.ID(), application.UpdateUserInput{FullName: ptr("")})
	require.NoError(t, err)
	require.Nil(t, got.FullName())
}

func TestUpdateUser_EmailTakenByAnotherUser(t *testing.T) {
	svc, r := newService(t)
	john := mustUser(t, "johndoe", "john@example.com")
	jane := mustUser(t, "janedoe", "jane@example.com")

	r.EXPECT().FindByID(gomock.Any(), john.ID()).Return(john, nil)
	r.EXPECT().FindByEmail(gomock.Any(), jane.Email()).Return(jane, nil)

	_, err := svc.UpdateUser(context.Background(), john.ID(), application.UpdateUserInput{Email: ptr("jane@example.com")})
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
	require.Equal(t, "john@example.com", john.Email().String())
}

func TestUpdateUser_UsernameTakenByAnotherUser(t *testing.T) {
	svc, r := newService(t)
	john := mustUser(t, "johndoe", "john@example.com")
	jane := mustUser(t, "janedoe", "jane@example.com")

	r.EXPECT().FindByID(gomock.Any(), john.ID()).Return(john, nil)
	r.EXPECT().FindByUsername(gomock.Any(), jane.Username()).Return(jane, nil)

	_, err := svc.UpdateUser(context.Background(), john.ID(), application.UpdateUserInput{Username: ptr("janedoe")})
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestUpdateUser_SameValuesSkipLookups(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().Update(gomock.Any(), u).Return(nil)

	_, err := svc.UpdateUser(context.Background(), u.ID(), application.UpdateUserInput{
		Username: ptr("johndoe"),
		Email:    ptr("JOHN@example.com"),
	})
	require.NoError(t, err)
}

func TestUpdateUser_ChangesUsernameAndEmail(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, nil)
	r.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
	r.EXPECT().Update(gomock.Any(), u).Return(nil)

	got, err := svc.UpdateUser(context.Background(), u.ID(), application.UpdateUserInput{
		Username: ptr("johnny"),
		Email:    ptr("johnny@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, "johnny", got.Username().String())
	require.Equal(t, "johnny@example.com", got.Email().String())
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, r := newService(t)
	id := uuid.New()

	r.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

	_, err := svc.UpdateUser(context.Background(), id, application.UpdateUserInput{FullName: ptr("x")})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestChangeUserStatus(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().Update(gomock.Any(), u).Return(nil)

	got, err := svc.ChangeUserStatus(context.Background(), u.ID(), "suspended")
	require.NoError(t, err)
	require.Equal(t, entity.StatusSuspended, got.Status())

	_, err = svc.ChangeUserStatus(context.Background(), u.ID(), "banned")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	svc, r := newService(t)
	u := mustUser(t, "johndoe", "john@example.com")

	gomock.InOrder(
		r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil),
		r.EXPECT().Delete(gomock.Any(), u.ID()).Return(nil),
		r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(nil, nil),
	)

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID()))

	_, err := svc.GetUser(context.Background(), u.ID())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteUser_NotFoundSkipsDelete(t *testing.T) {
	svc, r := newService(t)
	id := uuid.New()

	r.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

	require.ErrorIs(t, svc.DeleteUser(context.Background(), id), apperror.ErrNotFound)
}

func TestListUsers_RejectsOutOfRange(t *testing.T) {
	svc, _ := newService(t)

	for _, tc := range []struct{ limit, offset int }{{0, 0}, {101, 0}, {10, -1}} {
		_, err := svc.ListUsers(context.Background(), tc.limit, tc.offset)
		require.ErrorIs(t, err, apperror.ErrValidation, fmt.Sprintf("limit=%d offset=%d", tc.limit, tc.offset))
	}
}

func TestListUsers_Page(t *testing.T) {
	svc, r := newService(t)

	users := make([]*entity.User, 0, 20)
	for i := 0; i < 20; i++ {
		users = append(users, mustUser(t, fmt.Sprintf("user%02d", i), fmt.Sprintf("user%02d@example.com", i)))
	}
	r.EXPECT().List(gomock.Any(), 20, 0).Return(users, nil)
	r.EXPECT().Count(gomock.Any()).Return(int64(42), nil)

	page, err := svc.ListUsers(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Users, 20)
	require.EqualValues(t, 42, page.Total)
	require.Equal(t, 20, page.Limit)
	require.Equal(t, 0, page.Offset)
}

func TestListUsers_EmptyPageIsNotNil(t *testing.T) {
	svc, r := newService(t)

	r.EXPECT().List(gomock.Any(), 10, 50).Return(nil, nil)
	r.EXPECT().Count(gomock.Any()).Return(int64(3), nil)

	page, err := svc.ListUsers(context.Background(), 10, 50)
	require.NoError(t, err)
	require.NotNil(t, page.Users)
	require.Empty(t, page.Users)
}

func TestIndexFailureDoesNotFailCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mockrepository.NewMockUserRepository(ctrl)
	idx := mockrepository.NewMockUserSearchIndex(ctrl)
	svc := application.NewService(r, idx, quietLogger())

	r.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	r.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	idx.EXPECT().Index(gomock.Any(), gomock.Any()).Return(errors.New("es down"))

	_, err := svc.CreateUser(context.Background(), application.CreateUserInput{Username: "johndoe", Email: "john@example.com"})
	require.NoError(t, err)
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mockrepository.NewMockUserRepository(ctrl)
	idx := mockrepository.NewMockUserSearchIndex(ctrl)
	svc := application.NewService(r, idx, quietLogger())
	u := mustUser(t, "johndoe", "john@example.com")

	r.EXPECT().FindByID(gomock.Any(), u.ID()).Return(u, nil)
	r.EXPECT().Delete(gomock.Any(), u.ID()).Return(nil)
	idx.EXPECT().Remove(gomock.Any(), u.ID()).Return(nil)

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID()))
}

func TestSearchUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mockrepository.NewMockUserRepository(ctrl)
	idx := mockrepository.NewMockUserSearchIndex(ctrl)
	svc := application.NewService(r, idx, quietLogger())

	hits := []repository.SearchHit{{ID: uuid.New(), Username: "johndoe", Email: "john@example.com", Status: entity.StatusActive}}
	idx.EXPECT().Search(gomock.Any(), "john", application.DefaultSearchSize).Return(hits, nil)

	got, err := svc.SearchUsers(context.Background(), " john ", 500)
	require.NoError(t, err)
	require.Equal(t, hits, got)

	_, err = svc.SearchUsers(context.Background(), "  ", 5)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSearchUsers_NoIndex(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.SearchUsers(context.Background(), "john", 5)
	require.NoError(t, err)
	require.Empty(t, got)
}
