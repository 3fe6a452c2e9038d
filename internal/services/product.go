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

type ProductServiceInterface interface {
	GetProducts(ctx context.Context, filter types.Filter) ([]dto.ProductDTO, uint64, error)
	FindProduct(ctx context.Context, id uint64) (*dto.ProductDTO, error)
	CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, id uint64, payload dto.UpdateProductDTO) (*dto.ProductDTO, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductService struct {
	repo        repositories.ProductRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	logger      *zap.Logger
}

func NewProductService(
	repo repositories.ProductRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{repo: repo, companyRepo: companyRepo, logger: logger}
}

func productToDTO(p *entities.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		SKU:         p.SKU,
		Fabric:      p.Fabric,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		CreatedAt:   formatTimestamp(p.CreatedAt),
		UpdatedAt:   formatTimestampPtr(p.UpdatedAt),
	}
}

func (s *ProductService) GetProducts(ctx context.Context, filter types.Filter) ([]dto.ProductDTO, uint64, error) {
	products, total, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		list = append(list, productToDTO(&products[i]))
	}
	return list, total, nil
}

func (s *ProductService) FindProduct(ctx context.Context, id uint64) (*dto.ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	res := productToDTO(product)
	return &res, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, payload dto.CreateProductDTO) (*dto.ProductDTO, error) {
	if _, err := s.companyRepo.FindCompany(ctx, payload.CompanyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusUnprocessableEntity, "company does not exist", err)
		}
		return nil, err
	}
	product, err := s.repo.CreateProduct(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.Uint64("product_id", product.ID), zap.String("sku", product.SKU))
	res := productToDTO(product)
	return &res, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, payload dto.UpdateProductDTO) (*dto.ProductDTO, error) {
	product, err := s.repo.UpdateProduct(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	res := productToDTO(product)
	return &res, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	return s.repo.DeleteProduct(ctx, id)
}
