package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/events"
	"garment-oms/internal/repositories"
	"garment-oms/internal/timeline"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/eventbus"
	"garment-oms/pkg/types"
	"garment-oms/pkg/utils"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	DeleteOrder(ctx context.Context, id uint64) error
	ChangeStage(ctx context.Context, id uint64, payload dto.ChangeStageDTO, actorID uint64) (*dto.OrderDTO, error)
	GetStageHistory(ctx context.Context, id uint64) ([]dto.StageHistoryEntryDTO, error)
	AddPayment(ctx context.Context, orderID uint64, payload dto.CreatePaymentDTO) (*dto.PaymentDTO, error)
	ListPayments(ctx context.Context, orderID uint64) ([]dto.PaymentDTO, error)
}

type OrderService struct {
	orderRepo   repositories.OrderRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	clientRepo  repositories.ClientRepositoryInterface
	productRepo repositories.ProductRepositoryInterface
	pipeline    *timeline.Pipeline
	bus         *eventbus.Bus
	cache       repositories.CacheRepositoryInterface
	logger      *zap.Logger
	now         func() time.Time
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	productRepo repositories.ProductRepositoryInterface,
	pipeline *timeline.Pipeline,
	bus *eventbus.Bus,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	now func() time.Time,
) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		pipeline:    pipeline,
		bus:         bus,
		cache:       cache,
		logger:      logger,
		now:         now,
	}
}

func (s *OrderService) toDTO(o *entities.Order) dto.OrderDTO {
	tl := o.Timeline()
	ordinal := s.pipeline.ResolveStageIndex(tl.CurrentStage)

	history := make([]dto.StageHistoryEntryDTO, 0, len(o.StageHistory))
	for _, e := range o.StageHistory {
		history = append(history, dto.StageHistoryEntryDTO{
			StageName: e.StageName,
			EnteredAt: formatTimestamp(e.EnteredAt),
			Status:    e.Status,
		})
	}

	return dto.OrderDTO{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CompanyID:            o.CompanyID,
		ClientID:             o.ClientID,
		ProductID:            o.ProductID,
		Quantity:             o.Quantity,
		UnitPrice:            o.UnitPrice,
		TaxPercent:           o.TaxPercent,
		AdvancePaid:          o.AdvancePaid,
		TotalAmount:          o.TotalAmount(),
		Notes:                o.Notes,
		OrderDate:            o.OrderDate.Format(dateLayout),
		ExpectedDeliveryDate: formatDatePtr(o.ExpectedDeliveryDate),
		CurrentStage:         o.CurrentStage,
		Progress:             s.pipeline.ProgressPercent(ordinal),
		IsDelayed:            s.pipeline.OrderDelayed(tl, o.ExpectedDeliveryDate, s.now()),
		CompletedAt:          formatTimestampToPtr(o.CompletedAt),
		StageHistory:         history,
		CreatedAt:            formatTimestamp(o.CreatedAt),
		UpdatedAt:            formatTimestampPtr(o.UpdatedAt),
	}
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		s.logger.Error("list orders failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		list = append(list, s.toDTO(&orders[i]))
	}
	return list, total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64) (*dto.OrderDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.toDTO(order)
	return &res, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	company, err := s.companyRepo.FindCompany(ctx, payload.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "company does not exist", err)
		}
		return nil, err
	}
	if _, err := s.clientRepo.FindClient(ctx, payload.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "client does not exist", err)
		}
		return nil, err
	}
	if _, err := s.productRepo.FindProduct(ctx, payload.ProductID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "product does not exist", err)
		}
		return nil, err
	}

	orderDate, err := time.Parse(dateLayout, payload.OrderDate)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "invalid order date", err)
	}

	seq, err := s.companyRepo.NextOrderSequence(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tl := s.pipeline.Start(now)

	order := &entities.Order{
		OrderNumber: utils.FormatOrderNumber(company.ShortCode, seq),
		CompanyID:   payload.CompanyID,
		ClientID:    payload.ClientID,
		ProductID:   payload.ProductID,
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		TaxPercent:  payload.TaxPercent,
		AdvancePaid: payload.AdvancePaid,
		Notes:       payload.Notes,
		OrderDate:   orderDate,
	}
	if payload.ExpectedDeliveryDate.Valid {
		expected := payload.ExpectedDeliveryDate.Time
		order.ExpectedDeliveryDate = &expected
	}
	order.ApplyTimeline(tl)

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("create order failed", zap.Error(err), zap.String("order_number", order.OrderNumber))
		return nil, err
	}

	s.invalidateBoard(ctx)
	s.logger.Info("order created",
		zap.Uint64("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
	)

	res := s.toDTO(created)
	return &res, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	updated, err := s.orderRepo.UpdateOrder(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateBoard(ctx)
	res := s.toDTO(updated)
	return &res, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.invalidateBoard(ctx)
	return nil
}

// ChangeStage is the drag-and-drop backend: it runs the timeline engine over
// the order, commits the result in a single repository write, and only then
// publishes the stage-changed event. A same-column drop is a quiet no-op.
func (s *OrderService) ChangeStage(ctx context.Context, id uint64, payload dto.ChangeStageDTO, actorID uint64) (*dto.OrderDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	fromStage := ""
	if order.CurrentStage != nil {
		fromStage = *order.CurrentStage
	}

	now := s.now()
	tl, changed, err := s.pipeline.ApplyTransition(order.Timeline(), payload.Stage, now)
	if err != nil {
		if errors.Is(err, timeline.ErrUnknownStage) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "unknown stage: "+payload.Stage, err)
		}
		return nil, err
	}

	if !changed {
		res := s.toDTO(order)
		return &res, nil
	}

	if err := s.orderRepo.UpdateTimeline(ctx, id, tl); err != nil {
		s.logger.Error("commit stage transition failed",
			zap.Uint64("order_id", id),
			zap.String("to_stage", tl.CurrentStage),
			zap.Error(err),
		)
		return nil, err
	}
	order.ApplyTimeline(tl)

	s.invalidateBoard(ctx)

	ordinal := s.pipeline.ResolveStageIndex(tl.CurrentStage)
	s.bus.Publish(ctx, events.OrderStageChangedEvent{
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		FromStage:   fromStage,
		ToStage:     tl.CurrentStage,
		Progress:    s.pipeline.ProgressPercent(ordinal),
		ActorID:     actorID,
		OccurredAt:  now,
	})
	if tl.CompletedAt != nil {
		s.bus.Publish(ctx, events.OrderCompletedEvent{
			EventID:     uuid.NewString(),
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			CompletedAt: *tl.CompletedAt,
		})
	}

	s.logger.Info("order stage changed",
		zap.Uint64("order_id", order.ID),
		zap.String("from", fromStage),
		zap.String("to", tl.CurrentStage),
	)

	res := s.toDTO(order)
	return &res, nil
}

func (s *OrderService) GetStageHistory(ctx context.Context, id uint64) ([]dto.StageHistoryEntryDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	history := make([]dto.StageHistoryEntryDTO, 0, len(order.StageHistory))
	for _, e := range order.StageHistory {
		history = append(history, dto.StageHistoryEntryDTO{
			StageName: e.StageName,
			EnteredAt: formatTimestamp(e.EnteredAt),
			Status:    e.Status,
		})
	}
	return history, nil
}

func (s *OrderService) AddPayment(ctx context.Context, orderID uint64, payload dto.CreatePaymentDTO) (*dto.PaymentDTO, error) {
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	paidAt, err := time.Parse(dateLayout, payload.PaidAt)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "invalid payment date", err)
	}
	payment, err := s.orderRepo.AddPayment(ctx, orderID, payload, paidAt)
	if err != nil {
		return nil, err
	}
	res := paymentToDTO(payment)
	return &res, nil
}

func (s *OrderService) ListPayments(ctx context.Context, orderID uint64) ([]dto.PaymentDTO, error) {
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	payments, err := s.orderRepo.ListPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}
	list := make([]dto.PaymentDTO, 0, len(payments))
	for i := range payments {
		list = append(list, paymentToDTO(&payments[i]))
	}
	return list, nil
}

func paymentToDTO(p *entities.Payment) dto.PaymentDTO {
	return dto.PaymentDTO{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt.Format(dateLayout),
		CreatedAt: formatTimestamp(p.CreatedAt),
	}
}

func (s *OrderService) invalidateBoard(ctx context.Context) {
	if err := s.cache.Del(ctx, boardCacheKey); err != nil {
		s.logger.Warn("board cache invalidation failed", zap.Error(err))
	}
}
