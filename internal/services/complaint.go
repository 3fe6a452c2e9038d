package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/repositories"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/types"
)

type ComplaintServiceInterface interface {
	GetComplaints(ctx context.Context, filter types.Filter) ([]dto.ComplaintDTO, uint64, error)
	FindComplaint(ctx context.Context, id uint64) (*dto.ComplaintDTO, error)
	CreateComplaint(ctx context.Context, payload dto.CreateComplaintDTO) (*dto.ComplaintDTO, error)
	ResolveComplaint(ctx context.Context, id uint64, payload dto.ResolveComplaintDTO) (*dto.ComplaintDTO, error)
	DeleteComplaint(ctx context.Context, id uint64) error
}

type ComplaintService struct {
	repo      repositories.ComplaintRepositoryInterface
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
	now       func() time.Time
}

func NewComplaintService(
	repo repositories.ComplaintRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger,
	now func() time.Time,
) *ComplaintService {
	if now == nil {
		now = time.Now
	}
	return &ComplaintService{repo: repo, orderRepo: orderRepo, logger: logger, now: now}
}

func complaintToDTO(c *entities.Complaint) dto.ComplaintDTO {
	return dto.ComplaintDTO{
		ID:             c.ID,
		OrderID:        c.OrderID,
		ClientID:       c.ClientID,
		Subject:        c.Subject,
		Detail:         c.Detail,
		Status:         c.Status,
		ResolutionNote: c.ResolutionNote,
		ResolvedAt:     formatTimestampToPtr(c.ResolvedAt),
		CreatedAt:      formatTimestamp(c.CreatedAt),
		UpdatedAt:      formatTimestampPtr(c.UpdatedAt),
	}
}

func (s *ComplaintService) GetComplaints(ctx context.Context, filter types.Filter) ([]dto.ComplaintDTO, uint64, error) {
	complaints, total, err := s.repo.GetComplaints(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.ComplaintDTO, 0, len(complaints))
	for i := range complaints {
		list = append(list, complaintToDTO(&complaints[i]))
	}
	return list, total, nil
}

func (s *ComplaintService) FindComplaint(ctx context.Context, id uint64) (*dto.ComplaintDTO, error) {
	complaint, err := s.repo.FindComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	res := complaintToDTO(complaint)
	return &res, nil
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, payload dto.CreateComplaintDTO) (*dto.ComplaintDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "order does not exist", err)
		}
		return nil, err
	}
	if order.ClientID != payload.ClientID {
		return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "order does not belong to this client", nil)
	}

	complaint, err := s.repo.CreateComplaint(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("complaint created",
		zap.Uint64("complaint_id", complaint.ID),
		zap.Uint64("order_id", complaint.OrderID),
	)
	res := complaintToDTO(complaint)
	return &res, nil
}

func (s *ComplaintService) ResolveComplaint(ctx context.Context, id uint64, payload dto.ResolveComplaintDTO) (*dto.ComplaintDTO, error) {
	current, err := s.repo.FindComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == entities.ComplaintResolved {
		return nil, apperrors.NewHttpError(http.StatusConflict, "complaint is already resolved", nil)
	}

	complaint, err := s.repo.ResolveComplaint(ctx, id, payload.ResolutionNote, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("complaint resolved", zap.Uint64("complaint_id", complaint.ID))
	res := complaintToDTO(complaint)
	return &res, nil
}

func (s *ComplaintService) DeleteComplaint(ctx context.Context, id uint64) error {
	return s.repo.DeleteComplaint(ctx, id)
}
