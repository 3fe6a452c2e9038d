package services

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/repositories"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/types"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientService struct {
	repo        repositories.ClientRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	logger      *zap.Logger
}

func NewClientService(
	repo repositories.ClientRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{repo: repo, companyRepo: companyRepo, logger: logger}
}

func clientToDTO(c *entities.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestampPtr(c.UpdatedAt),
	}
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	clients, total, err := s.repo.GetClients(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.ClientDTO, 0, len(clients))
	for i := range clients {
		list = append(list, clientToDTO(&clients[i]))
	}
	return list, total, nil
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientDTO, error) {
	client, err := s.repo.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}
	res := clientToDTO(client)
	return &res, nil
}

func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error) {
	if _, err := s.companyRepo.FindCompany(ctx, payload.CompanyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "company does not exist", err)
		}
		return nil, err
	}
	client, err := s.repo.CreateClient(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("client created", zap.Uint64("client_id", client.ID), zap.Uint64("company_id", client.CompanyID))
	res := clientToDTO(client)
	return &res, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	client, err := s.repo.UpdateClient(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	res := clientToDTO(client)
	return &res, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	return s.repo.DeleteClient(ctx, id)
}
