package repository

//go:generate mockgen -package mockrepository -source=user_repository.go -destination=mock/mock_user_repository.go

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
)

// UserRepository is the persistence port for users.
// Finders return (nil, nil) when nothing matches. Update returns a NotFound
// error when the id does not exist. List is ordered newest first.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username valueobject.Username) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UsernameExists(ctx context.Context, username valueobject.Username) (bool, error)
	EmailExists(ctx context.Context, email valueobject.Email) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
