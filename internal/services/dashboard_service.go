package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/repositories"
	"garment-oms/internal/timeline"
)

const recentActivityLimit = 10

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
}

// DashboardService aggregates the admin landing page: totals, per-stage
// counts folded onto canonical stage names, and the latest stage entries
// across all active orders.
type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	orderRepo     repositories.OrderRepositoryInterface
	complaintRepo repositories.ComplaintRepositoryInterface
	pipeline      *timeline.Pipeline
	logger        *zap.Logger
	now           func() time.Time
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	complaintRepo repositories.ComplaintRepositoryInterface,
	pipeline *timeline.Pipeline,
	logger *zap.Logger,
	now func() time.Time,
) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		orderRepo:     orderRepo,
		complaintRepo: complaintRepo,
		pipeline:      pipeline,
		logger:        logger,
		now:           now,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	total, err := s.dashboardRepo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.dashboardRepo.CountCompletedOrders(ctx)
	if err != nil {
		return nil, err
	}
	openComplaints, err := s.complaintRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	rawCounts, err := s.dashboardRepo.StageCounts(ctx)
	if err != nil {
		return nil, err
	}

	// Stored stage labels may be aliases from older rows; fold every label
	// onto its canonical column before reporting.
	stages := s.pipeline.StageNames()
	folded := make([]int, len(stages))
	for label, count := range rawCounts {
		ordinal := s.pipeline.ResolveStageIndex(label)
		if ordinal == timeline.NotFound {
			s.logger.Warn("dashboard skipping unknown stored stage", zap.String("stage", label))
			continue
		}
		folded[ordinal] += count
	}
	stageCounts := make([]dto.StageCountDTO, len(stages))
	for i, name := range stages {
		stageCounts[i] = dto.StageCountDTO{Stage: name, Ordinal: i, Count: folded[i]}
	}

	orders, err := s.orderRepo.GetBoardOrders(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	delayed := 0
	type activity struct {
		dto.ActivityDTO
		at time.Time
	}
	var recent []activity
	for i := range orders {
		o := &orders[i]
		tl := o.Timeline()
		if s.pipeline.OrderDelayed(tl, o.ExpectedDeliveryDate, now) {
			delayed++
		}
		if len(o.StageHistory) == 0 {
			continue
		}
		last := o.StageHistory[len(o.StageHistory)-1]
		recent = append(recent, activity{
			ActivityDTO: dto.ActivityDTO{
				OrderID:     o.ID,
				OrderNumber: o.OrderNumber,
				Stage:       last.StageName,
				EnteredAt:   formatTimestamp(last.EnteredAt),
			},
			at: last.EnteredAt,
		})
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].at.After(recent[j].at) })
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	activities := make([]dto.ActivityDTO, 0, len(recent))
	for _, a := range recent {
		activities = append(activities, a.ActivityDTO)
	}

	return &dto.DashboardDTO{
		TotalOrders:     total,
		DelayedOrders:   delayed,
		CompletedOrders: completed,
		OpenComplaints:  openComplaints,
		StageCounts:     stageCounts,
		RecentActivity:  activities,
	}, nil
}
