package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/infrastructure/db"
	"garment-oms/internal/timeline"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/types"
	"garment-oms/pkg/utils"
)

const (
	orderTable  = "orders"
	orderFields = "id, order_number, company_id, client_id, product_id, quantity, unit_price, tax_percent, advance_paid, notes, order_date, expected_delivery_date, current_stage, stage_history, completed_at, created_at, updated_at"
)

var orderFilterMap = map[string]string{
	"company_id":    "company_id",
	"client_id":     "client_id",
	"product_id":    "product_id",
	"current_stage": "current_stage",
	"order_date":    "order_date",
	"created_at":    "created_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*entities.Order, error)
	// UpdateTimeline persists a stage transition: current_stage, the history
	// log and completed_at land in one UPDATE, which is the atomicity
	// boundary for the whole transition. Concurrent transitions of the same
	// order resolve last-writer-wins without corrupting earlier entries.
	UpdateTimeline(ctx context.Context, id uint64, tl timeline.Timeline) error
	DeleteOrder(ctx context.Context, id uint64) error
	GetBoardOrders(ctx context.Context) ([]entities.Order, error)
	AddPayment(ctx context.Context, orderID uint64, payload dto.CreatePaymentDTO, paidAt time.Time) (*entities.Payment, error)
	ListPayments(ctx context.Context, orderID uint64) ([]entities.Payment, error)
}

type orderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &orderRepository{storage: storage, logger: logger}
}

type dbOrder struct {
	ID                   uint64
	OrderNumber          string
	CompanyID            uint64
	ClientID             uint64
	ProductID            uint64
	Quantity             int
	UnitPrice            float64
	TaxPercent           float64
	AdvancePaid          float64
	Notes                sql.NullString
	OrderDate            time.Time
	ExpectedDeliveryDate sql.NullTime
	CurrentStage         sql.NullString
	StageHistory         []byte
	CompletedAt          sql.NullTime
	CreatedAt            time.Time
	UpdatedAt            sql.NullTime
}

func (row *dbOrder) toEntity() (entities.Order, error) {
	var history []timeline.HistoryEntry
	if len(row.StageHistory) > 0 {
		if err := json.Unmarshal(row.StageHistory, &history); err != nil {
			return entities.Order{}, fmt.Errorf("decode stage history of order %d: %w", row.ID, err)
		}
	}
	return entities.Order{
		ID:                   row.ID,
		OrderNumber:          row.OrderNumber,
		CompanyID:            row.CompanyID,
		ClientID:             row.ClientID,
		ProductID:            row.ProductID,
		Quantity:             row.Quantity,
		UnitPrice:            row.UnitPrice,
		TaxPercent:           row.TaxPercent,
		AdvancePaid:          row.AdvancePaid,
		Notes:                utils.NullStringToPtr(row.Notes),
		OrderDate:            row.OrderDate,
		ExpectedDeliveryDate: utils.NullTimeToPtr(row.ExpectedDeliveryDate),
		CurrentStage:         utils.NullStringToPtr(row.CurrentStage),
		StageHistory:         history,
		CompletedAt:          utils.NullTimeToPtr(row.CompletedAt),
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            utils.NullTimeToPtr(row.UpdatedAt),
	}, nil
}

func (row *dbOrder) scanFrom(r pgx.Row) error {
	return r.Scan(&row.ID, &row.OrderNumber, &row.CompanyID, &row.ClientID, &row.ProductID,
		&row.Quantity, &row.UnitPrice, &row.TaxPercent, &row.AdvancePaid, &row.Notes,
		&row.OrderDate, &row.ExpectedDeliveryDate, &row.CurrentStage, &row.StageHistory,
		&row.CompletedAt, &row.CreatedAt, &row.UpdatedAt)
}

func scanOrder(r pgx.Row) (*entities.Order, error) {
	var row dbOrder
	if err := row.scanFrom(r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	order, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(orderTable)
	listBuilder := psql.Select(orderFields).From(orderTable)

	if filter.Search != "" {
		cond := sq.ILike{"order_number": "%" + filter.Search + "%"}
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
		return []entities.Order{}, 0, nil
	}

	listBuilder = db.ApplyListParams(listBuilder, filter, orderFilterMap)
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

	orders := make([]entities.Order, 0)
	for rows.Next() {
		var row dbOrder
		if err := row.scanFrom(rows); err != nil {
			return nil, 0, err
		}
		order, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, rows.Err()
}

func (r *orderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query := "SELECT " + orderFields + " FROM " + orderTable + " WHERE id = $1"
	return scanOrder(r.storage.QueryRow(ctx, query, id))
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error) {
	historyJSON, err := json.Marshal(order.StageHistory)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO orders
		(order_number, company_id, client_id, product_id, quantity, unit_price, tax_percent, advance_paid, notes, order_date, expected_delivery_date, current_stage, stage_history, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + orderFields

	return scanOrder(r.storage.QueryRow(ctx, query,
		order.OrderNumber, order.CompanyID, order.ClientID, order.ProductID,
		order.Quantity, order.UnitPrice, order.TaxPercent, order.AdvancePaid,
		order.Notes, order.OrderDate, order.ExpectedDeliveryDate,
		order.CurrentStage, historyJSON, order.CompletedAt))
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*entities.Order, error) {
	builder := psql.Update(orderTable).Set("updated_at", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if payload.Quantity != nil {
		builder = builder.Set("quantity", *payload.Quantity)
	}
	if payload.UnitPrice != nil {
		builder = builder.Set("unit_price", *payload.UnitPrice)
	}
	if payload.TaxPercent != nil {
		builder = builder.Set("tax_percent", *payload.TaxPercent)
	}
	if payload.AdvancePaid != nil {
		builder = builder.Set("advance_paid", *payload.AdvancePaid)
	}
	if payload.Notes != nil {
		builder = builder.Set("notes", *payload.Notes)
	}
	if payload.ExpectedDeliveryDate.Valid {
		builder = builder.Set("expected_delivery_date", payload.ExpectedDeliveryDate.Time)
	}
	query, args, err := builder.Suffix("RETURNING " + orderFields).ToSql()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.storage.QueryRow(ctx, query, args...))
}

func (r *orderRepository) UpdateTimeline(ctx context.Context, id uint64, tl timeline.Timeline) error {
	historyJSON, err := json.Marshal(tl.History)
	if err != nil {
		return err
	}

	var currentStage *string
	if tl.CurrentStage != "" {
		currentStage = &tl.CurrentStage
	}

	tag, err := r.storage.Exec(ctx,
		`UPDATE orders SET current_stage = $1, stage_history = $2, completed_at = $3, updated_at = NOW() WHERE id = $4`,
		currentStage, historyJSON, tl.CompletedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id uint64) error {
	// Hard removal. Payments and complaints cascade at the schema level;
	// there is no further business logic behind a delete.
	tag, err := r.storage.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetBoardOrders returns every order that can appear on the Kanban board.
// Retention filtering happens in the board service against the injected
// clock; the repository only bounds the set (completed long ago and never
// staged orders are useless to the board).
func (r *orderRepository) GetBoardOrders(ctx context.Context) ([]entities.Order, error) {
	query := "SELECT " + orderFields + " FROM " + orderTable +
		" WHERE current_stage IS NOT NULL AND (completed_at IS NULL OR completed_at > NOW() - INTERVAL '7 days') ORDER BY id"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		var row dbOrder
		if err := row.scanFrom(rows); err != nil {
			return nil, err
		}
		order, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) AddPayment(ctx context.Context, orderID uint64, payload dto.CreatePaymentDTO, paidAt time.Time) (*entities.Payment, error) {
	query := `INSERT INTO order_payments (order_id, amount, method, reference, paid_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, order_id, amount, method, reference, paid_at, created_at`

	var p entities.Payment
	var ref sql.NullString
	err := r.storage.QueryRow(ctx, query, orderID, payload.Amount, payload.Method, payload.Reference, paidAt).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &ref, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Reference = utils.NullStringToPtr(ref)
	return &p, nil
}

func (r *orderRepository) ListPayments(ctx context.Context, orderID uint64) ([]entities.Payment, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, order_id, amount, method, reference, paid_at, created_at FROM order_payments WHERE order_id = $1 ORDER BY paid_at`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]entities.Payment, 0)
	for rows.Next() {
		var p entities.Payment
		var ref sql.NullString
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &ref, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Reference = utils.NullStringToPtr(ref)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
