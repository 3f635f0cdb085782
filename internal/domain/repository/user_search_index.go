package repository

//go:generate mockgen -package mockrepository -source=user_search_index.go -destination=mock/mock_user_search_index.go

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
)

// SearchHit is one user document matched by a full-text query.
type SearchHit struct {
	ID       uuid.UUID
	Score    float64
	Username string
	Email    string
	FullName *string
	Status   entity.Status
}

// UserSearchIndex is a read-side projection of users used for free-text search.
// It is never the source of truth; the UserRepository is.
type UserSearchIndex interface {
	Index(ctx context.Context, u *entity.User) error
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]SearchHit, error)
}
