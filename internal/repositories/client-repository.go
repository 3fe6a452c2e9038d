package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/infrastructure/db"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/types"
	"garment-oms/pkg/utils"
)

const (
	clientTable  = "clients"
	clientFields = "id, company_id, name, email, phone, address, city, created_at, updated_at"
)

var clientFilterMap = map[string]string{
	"company_id": "company_id",
	"name":       "name",
	"city":       "city",
	"created_at": "created_at",
}

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	FindClient(ctx context.Context, id uint64) (*entities.Client, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*entities.Client, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*entities.Client, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type clientRepository struct{ storage *pgxpool.Pool }

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &clientRepository{storage: storage}
}

type dbClient struct {
	ID        uint64
	CompanyID uint64
	Name      string
	Email     sql.NullString
	Phone     sql.NullString
	Address   sql.NullString
	City      sql.NullString
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (row *dbClient) toEntity() entities.Client {
	return entities.Client{
		ID:        row.ID,
		CompanyID: row.CompanyID,
		Name:      row.Name,
		Email:     utils.NullStringToPtr(row.Email),
		Phone:     utils.NullStringToPtr(row.Phone),
		Address:   utils.NullStringToPtr(row.Address),
		City:      utils.NullStringToPtr(row.City),
		CreatedAt: row.CreatedAt,
		UpdatedAt: utils.NullTimeToPtr(row.UpdatedAt),
	}
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var r dbClient
	err := row.Scan(&r.ID, &r.CompanyID, &r.Name, &r.Email, &r.Phone, &r.Address, &r.City, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	e := r.toEntity()
	return &e, nil
}

func (r *clientRepository) GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(clientTable)
	listBuilder := psql.Select(clientFields).From(clientTable)

	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"name": "%" + filter.Search + "%"},
			sq.ILike{"city": "%" + filter.Search + "%"},
		}
		countBuilder = countBuilder.Where(cond)
		listBuilder = listBuilder.Where(cond)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Client{}, 0, nil
	}

	listBuilder = db.ApplyListParams(listBuilder, filter, clientFilterMap)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("id")
	}
	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]entities.Client, 0)
	for rows.Next() {
		var row dbClient
		if err := rows.Scan(&row.ID, &row.CompanyID, &row.Name, &row.Email, &row.Phone, &row.Address, &row.City, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		clients = append(clients, row.toEntity())
	}
	return clients, total, rows.Err()
}

func (r *clientRepository) FindClient(ctx context.Context, id uint64) (*entities.Client, error) {
	query := "SELECT " + clientFields + " FROM " + clientTable + " WHERE id = $1"
	return scanClient(r.storage.QueryRow(ctx, query, id))
}

func (r *clientRepository) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*entities.Client, error) {
	query := `INSERT INTO clients (company_id, name, email, phone, address, city)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + clientFields
	return scanClient(r.storage.QueryRow(ctx, query,
		payload.CompanyID, payload.Name, payload.Email, payload.Phone, payload.Address, payload.City))
}

func (r *clientRepository) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*entities.Client, error) {
	builder := psql.Update(clientTable).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
	}
	if payload.Email != nil {
		builder = builder.Set("email", *payload.Email)
	}
	if payload.Phone != nil {
		builder = builder.Set("phone", *payload.Phone)
	}
	if payload.Address != nil {
		builder = builder.Set("address", *payload.Address)
	}
	if payload.City != nil {
		builder = builder.Set("city", *payload.City)
	}
	query, args, err := builder.Suffix("RETURNING " + clientFields).ToSql()
	if err != nil {
		return nil, err
	}
	return scanClient(r.storage.QueryRow(ctx, query, args...))
}

func (r *clientRepository) DeleteClient(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
