package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

// userRecord mirrors a row of the users table.
type userRecord struct {
	ID        uuid.UUID
	Username  string
	Email     string
	FullName  *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r userRecord) toEntity() (*entity.User, error) {
	username, err := valueobject.NewUsername(r.Username)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "stored username for %s is invalid", r.ID)
	}
	email, err := valueobject.NewEmail(r.Email)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "stored email for %s is invalid", r.ID)
	}
	status, err := entity.ParseStatus(r.Status)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "stored status for %s is invalid", r.ID)
	}
	return entity.Reconstruct(r.ID, username, email, r.FullName, status, r.CreatedAt.UTC(), r.UpdatedAt.UTC()), nil
}
