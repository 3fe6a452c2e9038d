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
	productTable  = "products"
	productFields = "id, company_id, name, sku, fabric, description, unit_price, created_at, updated_at"
)

var productFilterMap = map[string]string{
	"company_id": "company_id",
	"name":       "name",
	"sku":        "sku",
	"created_at": "created_at",
	"unit_price": "unit_price",
}

type ProductRepositoryInterface interface {
	GetProducts(ctx context.Context, filter types.Filter) ([]entities.Product, uint64, error)
	FindProduct(ctx context.Context, id uint64) (*entities.Product, error)
	CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*entities.Product, error)
	UpdateProduct(ctx context.Context, id uint64, payload dto.UpdateProductDTO) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type productRepository struct{ storage *pgxpool.Pool }

func NewProductRepository(storage *pgxpool.Pool) ProductRepositoryInterface {
	return &productRepository{storage: storage}
}

type dbProduct struct {
	ID          uint64
	CompanyID   uint64
	Name        string
	SKU         string
	Fabric      sql.NullString
	Description sql.NullString
	UnitPrice   float64
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (row *dbProduct) toEntity() entities.Product {
	return entities.Product{
		ID:          row.ID,
		CompanyID:   row.CompanyID,
		Name:        row.Name,
		SKU:         row.SKU,
		Fabric:      utils.NullStringToPtr(row.Fabric),
		Description: utils.NullStringToPtr(row.Description),
		UnitPrice:   row.UnitPrice,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   utils.NullTimeToPtr(row.UpdatedAt),
	}
}

func scanProduct(row pgx.Row) (*entities.Product, error) {
	var r dbProduct
	err := row.Scan(&r.ID, &r.CompanyID, &r.Name, &r.SKU, &r.Fabric, &r.Description, &r.UnitPrice, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	e := r.toEntity()
	return &e, nil
}

func (r *productRepository) GetProducts(ctx context.Context, filter types.Filter) ([]entities.Product, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(productTable)
	listBuilder := psql.Select(productFields).From(productTable)

	if filter.Search != "" {
		cond := sq.Or{
			sq.ILike{"name": "%" + filter.Search + "%"},
			sq.ILike{"sku": "%" + filter.Search + "%"},
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
		return []entities.Product{}, 0, nil
	}

	listBuilder = db.ApplyListParams(listBuilder, filter, productFilterMap)
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

	products := make([]entities.Product, 0)
	for rows.Next() {
		var row dbProduct
		if err := rows.Scan(&row.ID, &row.CompanyID, &row.Name, &row.SKU, &row.Fabric, &row.Description, &row.UnitPrice, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, row.toEntity())
	}
	return products, total, rows.Err()
}

func (r *productRepository) FindProduct(ctx context.Context, id uint64) (*entities.Product, error) {
	query := "SELECT " + productFields + " FROM " + productTable + " WHERE id = $1"
	return scanProduct(r.storage.QueryRow(ctx, query, id))
}

func (r *productRepository) CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*entities.Product, error) {
	query := `INSERT INTO products (company_id, name, sku, fabric, description, unit_price)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + productFields
	product, err := scanProduct(r.storage.QueryRow(ctx, query,
		payload.CompanyID, payload.Name, payload.SKU, payload.Fabric, payload.Description, payload.UnitPrice))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id uint64, payload dto.UpdateProductDTO) (*entities.Product, error) {
	builder := psql.Update(productTable).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
	}
	if payload.Fabric != nil {
		builder = builder.Set("fabric", *payload.Fabric)
	}
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
	}
	if payload.UnitPrice != nil {
		builder = builder.Set("unit_price", *payload.UnitPrice)
	}
	query, args, err := builder.Suffix("RETURNING " + productFields).ToSql()
	if err != nil {
		return nil, err
	}
	return scanProduct(r.storage.QueryRow(ctx, query, args...))
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
