package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

const (
	MinListLimit = 1
	MaxListLimit = 100

	DefaultSearchSize = 10
	MaxSearchSize     = 50

	indexTimeout = 3 * time.Second
)

// Service implements the user use cases on top of the repository port.
// Index is optional; when set it is kept in sync on a best-effort basis.
type Service struct {
	Repo   repo.UserRepository
	Index  repo.UserSearchIndex
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, index repo.UserSearchIndex, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{Repo: r, Index: index, Logger: logger}
}

type CreateUserInput struct {
	Username string
	Email    string
	FullName *string
}

// UpdateUserInput carries optional changes. A nil field is left untouched;
// an empty FullName clears it.
type UpdateUserInput struct {
	Username *string
	Email    *string
	FullName *string
}

type UserPage struct {
	Users  []*entity.User
	Total  int64
	Limit  int
	Offset int
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	username, err := valueobject.NewUsername(in.Username)
	if err != nil {
		return nil, err
	}
	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}

	taken, err := s.Repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, infra(err, "check username")
	}
	if taken {
		return nil, apperror.With(apperror.ErrAlreadyExists, "username '%s' already exists", username)
	}
	taken, err = s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, infra(err, "check email")
	}
	if taken {
		return nil, apperror.With(apperror.ErrAlreadyExists, "email '%s' already exists", email)
	}

	u, err := entity.NewUser(username, email, normalizeFullName(in.FullName))
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, infra(err, "create user")
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID(), "username": u.Username().String()}).Info("user created")
	s.indexUser(ctx, u)
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.loadUser(ctx, id)
}

func (s *Service) GetUserByUsername(ctx context.Context, raw string) (*entity.User, error) {
	username, err := valueobject.NewUsername(raw)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, infra(err, "find user by username")
	}
	if u == nil {
		return nil, apperror.With(apperror.ErrNotFound, "user with username '%s' not found", username)
	}
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*entity.User, error) {
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var username *valueobject.Username
	if in.Username != nil {
		v, err := valueobject.NewUsername(*in.Username)
		if err != nil {
			return nil, err
		}
		if !v.Equal(u.Username()) {
			other, err := s.Repo.FindByUsername(ctx, v)
			if err != nil {
				return nil, infra(err, "find user by username")
			}
			if other != nil && other.ID() != u.ID() {
				return nil, apperror.With(apperror.ErrAlreadyExists, "username '%s' already exists", v)
			}
		}
		username = &v
	}

	var email *valueobject.Email
	if in.Email != nil {
		v, err := valueobject.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if !v.Equal(u.Email()) {
			other, err := s.Repo.FindByEmail(ctx, v)
			if err != nil {
				return nil, infra(err, "find user by email")
			}
			if other != nil && other.ID() != u.ID() {
				return nil, apperror.With(apperror.ErrAlreadyExists, "email '%s' already exists", v)
			}
		}
		email = &v
	}

	if in.FullName != nil {
		if err := u.SetFullName(normalizeFullName(in.FullName)); err != nil {
			return nil, err
		}
	}
	if username != nil {
		u.Rename(*username)
	}
	if email != nil {
		u.ChangeEmail(*email)
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, infra(err, "update user")
	}

	s.Logger.WithField("user_id", u.ID()).Info("user updated")
	s.indexUser(ctx, u)
	return u, nil
}

// ChangeUserStatus moves a user to the given status. Any transition is allowed.
func (s *Service) ChangeUserStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*entity.User, error) {
	status, err := entity.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case entity.StatusActive:
		u.Activate()
	case entity.StatusInactive:
		u.Deactivate()
	case entity.StatusSuspended:
		u.Suspend()
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, infra(err, "update user status")
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID(), "status": status}).Info("user status changed")
	s.indexUser(ctx, u)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return infra(err, "delete user")
	}

	s.Logger.WithField("user_id", id).Info("user deleted")
	s.removeUser(ctx, id)
	return nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) (*UserPage, error) {
	if limit < MinListLimit || limit > MaxListLimit {
		return nil, apperror.With(apperror.ErrValidation, "limit must be between %d and %d", MinListLimit, MaxListLimit)
	}
	if offset < 0 {
		return nil, apperror.With(apperror.ErrValidation, "offset must be non-negative")
	}

	users, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, infra(err, "list users")
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, infra(err, "count users")
	}
	if users == nil {
		users = []*entity.User{}
	}
	return &UserPage{Users: users, Total: total, Limit: limit, Offset: offset}, nil
}

// SearchUsers runs a free-text query against the search projection.
// Without a projection it returns no hits.
func (s *Service) SearchUsers(ctx context.Context, query string, size int) ([]repo.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.With(apperror.ErrValidation, "search query cannot be empty")
	}
	if s.Index == nil {
		return []repo.SearchHit{}, nil
	}
	if size <= 0 || size > MaxSearchSize {
		size = DefaultSearchSize
	}

	hits, err := s.Index.Search(ctx, query, size)
	if err != nil {
		return nil, infra(err, "search users")
	}
	return hits, nil
}

func (s *Service) loadUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, infra(err, "find user by id")
	}
	if u == nil {
		return nil, apperror.With(apperror.ErrNotFound, "user with id '%s' not found", id)
	}
	return u, nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := s.Index.Index(c, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID()).Warn("search index update failed")
	}
}

func (s *Service) removeUser(ctx context.Context, id uuid.UUID) {
	if s.Index == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := s.Index.Remove(c, id); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("search index removal failed")
	}
}

// infra keeps kinded errors as they are and tags everything else as an
// infrastructure failure.
func infra(err error, op string) error {
	if apperror.HasKind(err) {
		return err
	}
	return apperror.Wrap(apperror.ErrInfrastructure, err, op)
}

func normalizeFullName(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
