package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"garment-oms/internal/entities"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/utils"
)

const userFields = "id, email, password_hash, full_name, role, client_id, created_at, updated_at"

type UserRepositoryInterface interface {
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
}

type userRepository struct{ storage *pgxpool.Pool }

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var clientID sql.NullInt64
	var updatedAt sql.NullTime
	var createdAt time.Time

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &clientID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if clientID.Valid {
		id := uint64(clientID.Int64)
		u.ClientID = &id
	}
	u.CreatedAt = createdAt
	u.UpdatedAt = utils.NullTimeToPtr(updatedAt)
	return &u, nil
}

func (r *userRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE id = $1", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE email = $1", email))
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `INSERT INTO users (email, password_hash, full_name, role, client_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING ` + userFields
	created, err := scanUser(r.storage.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.Role, user.ClientID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return created, nil
}
