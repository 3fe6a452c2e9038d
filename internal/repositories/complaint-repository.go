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
	complaintTable  = "complaints"
	complaintFields = "id, order_id, client_id, subject, detail, status, resolution_note, resolved_at, created_at, updated_at"
)

var complaintFilterMap = map[string]string{
	"order_id":   "order_id",
	"client_id":  "client_id",
	"status":     "status",
	"created_at": "created_at",
}

type ComplaintRepositoryInterface interface {
	GetComplaints(ctx context.Context, filter types.Filter) ([]entities.Complaint, uint64, error)
	FindComplaint(ctx context.Context, id uint64) (*entities.Complaint, error)
	CreateComplaint(ctx context.Context, payload dto.CreateComplaintDTO) (*entities.Complaint, error)
	ResolveComplaint(ctx context.Context, id uint64, note string, resolvedAt time.Time) (*entities.Complaint, error)
	DeleteComplaint(ctx context.Context, id uint64) error
	CountOpen(ctx context.Context) (int, error)
}

type complaintRepository struct{ storage *pgxpool.Pool }

func NewComplaintRepository(storage *pgxpool.Pool) ComplaintRepositoryInterface {
	return &complaintRepository{storage: storage}
}

type dbComplaint struct {
	ID             uint64
	OrderID        uint64
	ClientID       uint64
	Subject        string
	Detail         string
	Status         string
	ResolutionNote sql.NullString
	ResolvedAt     sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      sql.NullTime
}

func (row *dbComplaint) toEntity() entities.Complaint {
	return entities.Complaint{
		ID:             row.ID,
		OrderID:        row.OrderID,
		ClientID:       row.ClientID,
		Subject:        row.Subject,
		Detail:         row.Detail,
		Status:         row.Status,
		ResolutionNote: utils.NullStringToPtr(row.ResolutionNote),
		ResolvedAt:     utils.NullTimeToPtr(row.ResolvedAt),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      utils.NullTimeToPtr(row.UpdatedAt),
	}
}

func scanComplaint(row pgx.Row) (*entities.Complaint, error) {
	var r dbComplaint
	err := row.Scan(&r.ID, &r.OrderID, &r.ClientID, &r.Subject, &r.Detail, &r.Status, &r.ResolutionNote, &r.ResolvedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	e := r.toEntity()
	return &e, nil
}

func (r *complaintRepository) GetComplaints(ctx context.Context, filter types.Filter) ([]entities.Complaint, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(complaintTable)
	listBuilder := psql.Select(complaintFields).From(complaintTable)

	if filter.Search != "" {
		cond := sq.ILike{"subject": "%" + filter.Search + "%"}
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
		return []entities.Complaint{}, 0, nil
	}

	listBuilder = db.ApplyListParams(listBuilder, filter, complaintFilterMap)
	if len(filter.Sort) == 0 {
		listBuilder = listBuilder.OrderBy("id DESC")
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

	complaints := make([]entities.Complaint, 0)
	for rows.Next() {
		var row dbComplaint
		if err := rows.Scan(&row.ID, &row.OrderID, &row.ClientID, &row.Subject, &row.Detail, &row.Status, &row.ResolutionNote, &row.ResolvedAt, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, row.toEntity())
	}
	return complaints, total, rows.Err()
}

func (r *complaintRepository) FindComplaint(ctx context.Context, id uint64) (*entities.Complaint, error) {
	query := "SELECT " + complaintFields + " FROM " + complaintTable + " WHERE id = $1"
	return scanComplaint(r.storage.QueryRow(ctx, query, id))
}

func (r *complaintRepository) CreateComplaint(ctx context.Context, payload dto.CreateComplaintDTO) (*entities.Complaint, error) {
	query := `INSERT INTO complaints (order_id, client_id, subject, detail, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING ` + complaintFields
	return scanComplaint(r.storage.QueryRow(ctx, query,
		payload.OrderID, payload.ClientID, payload.Subject, payload.Detail, entities.ComplaintOpen))
}

func (r *complaintRepository) ResolveComplaint(ctx context.Context, id uint64, note string, resolvedAt time.Time) (*entities.Complaint, error) {
	query := `UPDATE complaints
	          SET status = $1, resolution_note = $2, resolved_at = $3, updated_at = NOW()
	          WHERE id = $4 RETURNING ` + complaintFields
	return scanComplaint(r.storage.QueryRow(ctx, query, entities.ComplaintResolved, note, resolvedAt, id))
}

func (r *complaintRepository) DeleteComplaint(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM complaints WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *complaintRepository) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM complaints WHERE status = $1", entities.ComplaintOpen).Scan(&n)
	return n, err
}
