package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-service/pkg/apperror"
)

const userColumns = `id, username, email, full_name, status, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID(), u.Username().String(), u.Email().String(), u.FullName(), u.Status().String(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		return mapWriteError(err, "insert user")
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username valueobject.Username) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username.String())
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String())
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, full_name = $4, status = $5, updated_at = $6
		WHERE id = $1
	`, u.ID(), u.Username().String(), u.Email().String(), u.FullName(), u.Status().String(), u.UpdatedAt())
	if err != nil {
		return mapWriteError(err, "update user")
	}
	if res.RowsAffected() == 0 {
		return apperror.With(apperror.ErrNotFound, "user with id '%s' not found", u.ID())
	}
	return nil
}

// Delete is idempotent; removing a missing id is not an error.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return apperror.Wrap(apperror.ErrInfrastructure, err, "delete user")
	}
	return nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username valueobject.Username) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username.String())
}

func (r *UserRepository) EmailExists(ctx context.Context, email valueobject.Email) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email.String())
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "list users")
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "list users")
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperror.Wrap(apperror.ErrInfrastructure, err, "count users")
	}
	return n, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, apperror.Wrap(apperror.ErrInfrastructure, err, "check existence")
	}
	return ok, nil
}

// scanUser rehydrates a row. pgx.ErrNoRows is returned unwrapped so callers
// can turn it into "absent".
func scanUser(row pgx.Row) (*entity.User, error) {
	var rec userRecord
	if err := row.Scan(&rec.ID, &rec.Username, &rec.Email, &rec.FullName, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, apperror.Wrap(apperror.ErrInfrastructure, err, "scan user")
	}
	return rec.toEntity()
}

// mapWriteError turns unique violations into AlreadyExists so a lost
// check-then-insert race still reports a conflict.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return apperror.Wrap(apperror.ErrAlreadyExists, err, "username already exists")
		case "users_email_key":
			return apperror.Wrap(apperror.ErrAlreadyExists, err, "email already exists")
		default:
			return apperror.Wrap(apperror.ErrAlreadyExists, err, "user already exists")
		}
	}
	return apperror.Wrap(apperror.ErrInfrastructure, err, op)
}

var _ repository.UserRepository = (*UserRepository)(nil)
