package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/repositories"
	"garment-oms/internal/timeline"
	"garment-oms/pkg/types"
)

type ReportServiceInterface interface {
	GetOrdersReport(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
}

// ReportService feeds the orders export. It is read-only over the same
// order projection the list endpoint uses.
type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	pipeline  *timeline.Pipeline
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(
	orderRepo repositories.OrderRepositoryInterface,
	pipeline *timeline.Pipeline,
	logger *zap.Logger,
	now func() time.Time,
) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{orderRepo: orderRepo, pipeline: pipeline, logger: logger, now: now}
}

func (s *ReportService) GetOrdersReport(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		s.logger.Error("orders report query failed", zap.Error(err))
		return nil, 0, err
	}

	now := s.now()
	list := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		tl := o.Timeline()
		ordinal := s.pipeline.ResolveStageIndex(tl.CurrentStage)
		list = append(list, dto.OrderDTO{
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
			IsDelayed:            s.pipeline.OrderDelayed(tl, o.ExpectedDeliveryDate, now),
			CompletedAt:          formatTimestampToPtr(o.CompletedAt),
			CreatedAt:            formatTimestamp(o.CreatedAt),
			UpdatedAt:            formatTimestampPtr(o.UpdatedAt),
		})
	}
	return list, total, nil
}
