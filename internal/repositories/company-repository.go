package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/infrastructure/db"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/types"
	"garment-oms/pkg/utils"
)

const (
	companyTable  = "companies"
	companyFields = "id, name, short_code, email, phone, address, gst_number, order_seq, created_at, updated_at"
)

var companyFilterMap = map[string]string{
	"name":       "name",
	"short_code": "short_code",
	"created_at": "created_at",
}

type CompanyRepositoryInterface interface {
	GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error)
	FindCompany(ctx context.Context, id uint64) (*entities.Company, error)
	CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error)
	UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*entities.Company, error)
	DeleteCompany(ctx context.Context, id uint64) error
	// NextOrderSequence atomically bumps and returns the per-company order
	// counter used in order numbers.
	NextOrderSequence(ctx context.Context, id uint64) (uint64, error)
}

type companyRepository struct{ storage *pgxpool.Pool }

func NewCompanyRepository(storage *pgxpool.Pool) CompanyRepositoryInterface {
	return &companyRepository{storage: storage}
}

type dbCompany struct {
	ID        uint64
	Name      string
	ShortCode string
	Email     sql.NullString
	Phone     sql.NullString
	Address   sql.NullString
	GSTNumber sql.NullString
	OrderSeq  uint64
	CreatedAt time.Time
	UpdatedAt sql.NullTime
}

func (row *dbCompany) toEntity() entities.Company {
	return entities.Company{
		ID:        row.ID,
		Name:      row.Name,
		ShortCode: row.ShortCode,
		Email:     utils.NullStringToPtr(row.Email),
		Phone:     utils.NullStringToPtr(row.Phone),
		Address:   utils.NullStringToPtr(row.Address),
		GSTNumber: utils.NullStringToPtr(row.GSTNumber),
		OrderSeq:  row.OrderSeq,
		CreatedAt: row.CreatedAt,
		UpdatedAt: utils.NullTimeToPtr(row.UpdatedAt),
	}
}

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var r dbCompany
	err := row.Scan(&r.ID, &r.Name, &r.ShortCode, &r.Email, &r.Phone, &r.Address, &r.GSTNumber, &r.OrderSeq, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	e := r.toEntity()
	return &e, nil
}

func (r *companyRepository) GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(companyTable)
	listBuilder := psql.Select(companyFields).From(companyTable)

	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"name": "%" + filter.Search + "%"},
			sq.ILike{"short_code": "%" + filter.Search + "%"},
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
		return []entities.Company{}, 0, nil
	}

	listBuilder = db.ApplyListParams(listBuilder, filter, companyFilterMap)
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

	companies := make([]entities.Company, 0)
	for rows.Next() {
		var row dbCompany
		if err := rows.Scan(&row.ID, &row.Name, &row.ShortCode, &row.Email, &row.Phone, &row.Address, &row.GSTNumber, &row.OrderSeq, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		companies = append(companies, row.toEntity())
	}
	return companies, total, rows.Err()
}

func (r *companyRepository) FindCompany(ctx context.Context, id uint64) (*entities.Company, error) {
	query := "SELECT " + companyFields + " FROM " + companyTable + " WHERE id = $1"
	return scanCompany(r.storage.QueryRow(ctx, query, id))
}

func (r *companyRepository) CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error) {
	query := `INSERT INTO companies (name, short_code, email, phone, address, gst_number)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + companyFields
	company, err := scanCompany(r.storage.QueryRow(ctx, query,
		payload.Name, payload.ShortCode, payload.Email, payload.Phone, payload.Address, payload.GSTNumber))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*entities.Company, error) {
	builder := psql.Update(companyTable).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
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
	if payload.GSTNumber != nil {
		builder = builder.Set("gst_number", *payload.GSTNumber)
	}
	query, args, err := builder.Suffix("RETURNING " + companyFields).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCompany(r.storage.QueryRow(ctx, query, args...))
}

func (r *companyRepository) DeleteCompany(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *companyRepository) NextOrderSequence(ctx context.Context, id uint64) (uint64, error) {
	var seq uint64
	err := r.storage.QueryRow(ctx,
		"UPDATE companies SET order_seq = order_seq + 1 WHERE id = $1 RETURNING order_seq", id).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, err
	}
	return seq, nil
}
