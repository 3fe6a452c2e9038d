package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/repositories"
	"garment-oms/internal/timeline"
)

const boardCacheKey = "board:v1"

type BoardServiceInterface interface {
	GetBoard(ctx context.Context) (*dto.BoardDTO, error)
}

// BoardService assembles the Kanban view: one column per pipeline stage,
// cards placed by current stage, with the terminal column limited by the
// retention window. The assembled board is cached briefly in Redis since it
// is the most-polled endpoint.
type BoardService struct {
	orderRepo repositories.OrderRepositoryInterface
	pipeline  *timeline.Pipeline
	cache     repositories.CacheRepositoryInterface
	logger    *zap.Logger
	retention time.Duration
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewBoardService(
	orderRepo repositories.OrderRepositoryInterface,
	pipeline *timeline.Pipeline,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	retention time.Duration,
	cacheTTL time.Duration,
	now func() time.Time,
) *BoardService {
	if now == nil {
		now = time.Now
	}
	return &BoardService{
		orderRepo: orderRepo,
		pipeline:  pipeline,
		cache:     cache,
		logger:    logger,
		retention: retention,
		cacheTTL:  cacheTTL,
		now:       now,
	}
}

func (s *BoardService) GetBoard(ctx context.Context) (*dto.BoardDTO, error) {
	if cached, err := s.cache.Get(ctx, boardCacheKey); err == nil && cached != "" {
		var board dto.BoardDTO
		if err := json.Unmarshal([]byte(cached), &board); err == nil {
			return &board, nil
		}
		// A stale or corrupt cache entry falls through to a rebuild.
	}

	orders, err := s.orderRepo.GetBoardOrders(ctx)
	if err != nil {
		s.logger.Error("load board orders failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	stages := s.pipeline.StageNames()
	columns := make([]dto.BoardColumnDTO, len(stages))
	for i, name := range stages {
		columns[i] = dto.BoardColumnDTO{
			Stage:   name,
			Ordinal: i,
			Orders:  []dto.BoardCardDTO{},
		}
	}

	for i := range orders {
		o := &orders[i]
		tl := o.Timeline()
		ordinal := s.pipeline.ResolveStageIndex(tl.CurrentStage)
		if ordinal == timeline.NotFound {
			continue
		}
		if !s.pipeline.VisibleInStage(tl, stages[ordinal], now, s.retention) {
			continue
		}

		card := dto.BoardCardDTO{
			ID:                   o.ID,
			OrderNumber:          o.OrderNumber,
			ClientID:             o.ClientID,
			ProductID:            o.ProductID,
			Quantity:             o.Quantity,
			Progress:             s.pipeline.ProgressPercent(ordinal),
			IsDelayed:            s.pipeline.OrderDelayed(tl, o.ExpectedDeliveryDate, now),
			ExpectedDeliveryDate: formatDatePtr(o.ExpectedDeliveryDate),
		}
		if entered := lastEnteredAt(tl.History); entered != nil {
			card.EnteredStageAt = formatTimestampToPtr(entered)
		}
		columns[ordinal].Orders = append(columns[ordinal].Orders, card)
	}

	board := &dto.BoardDTO{Columns: columns}

	if raw, err := json.Marshal(board); err == nil {
		if err := s.cache.Set(ctx, boardCacheKey, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("board cache write failed", zap.Error(err))
		}
	}
	return board, nil
}

func lastEnteredAt(history []timeline.HistoryEntry) *time.Time {
	if len(history) == 0 {
		return nil
	}
	t := history[len(history)-1].EnteredAt
	return &t
}
