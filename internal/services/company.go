package services

import (
	"context"

	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/repositories"
	"garment-oms/pkg/types"
)

type CompanyServiceInterface interface {
	GetCompanies(ctx context.Context, filter types.Filter) ([]dto.CompanyDTO, uint64, error)
	FindCompany(ctx context.Context, id uint64) (*dto.CompanyDTO, error)
	CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*dto.CompanyDTO, error)
	UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*dto.CompanyDTO, error)
	DeleteCompany(ctx context.Context, id uint64) error
}

type CompanyService struct {
	repo   repositories.CompanyRepositoryInterface
	logger *zap.Logger
}

func NewCompanyService(repo repositories.CompanyRepositoryInterface, logger *zap.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

func companyToDTO(c *entities.Company) dto.CompanyDTO {
	return dto.CompanyDTO{
		ID:        c.ID,
		Name:      c.Name,
		ShortCode: c.ShortCode,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		GSTNumber: c.GSTNumber,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestampPtr(c.UpdatedAt),
	}
}

func (s *CompanyService) GetCompanies(ctx context.Context, filter types.Filter) ([]dto.CompanyDTO, uint64, error) {
	companies, total, err := s.repo.GetCompanies(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		list = append(list, companyToDTO(&companies[i]))
	}
	return list, total, nil
}

func (s *CompanyService) FindCompany(ctx context.Context, id uint64) (*dto.CompanyDTO, error) {
	company, err := s.repo.FindCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	res := companyToDTO(company)
	return &res, nil
}

func (s *CompanyService) CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*dto.CompanyDTO, error) {
	company, err := s.repo.CreateCompany(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("company created", zap.Uint64("company_id", company.ID), zap.String("short_code", company.ShortCode))
	res := companyToDTO(company)
	return &res, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*dto.CompanyDTO, error) {
	company, err := s.repo.UpdateCompany(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	res := companyToDTO(company)
	return &res, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id uint64) error {
	return s.repo.DeleteCompany(ctx, id)
}
