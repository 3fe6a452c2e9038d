package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/services"
	"garment-oms/pkg/api"
	"garment-oms/pkg/utils"
)

type CompanyController struct {
	companyService services.CompanyServiceInterface
	logger         *zap.Logger
}

func NewCompanyController(companyService services.CompanyServiceInterface, logger *zap.Logger) *CompanyController {
	return &CompanyController{companyService: companyService, logger: logger}
}

func (c *CompanyController) GetCompanies(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.companyService.GetCompanies(reqCtx, filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "companies fetched", list, total, filter.Page, filter.Limit)
}

func (c *CompanyController) FindCompany(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.companyService.FindCompany(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "company fetched", res)
}

func (c *CompanyController) CreateCompany(ctx echo.Context) error {
	var payload dto.CreateCompanyDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.companyService.CreateCompany(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "company created", res)
}

func (c *CompanyController) UpdateCompany(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.UpdateCompanyDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.companyService.UpdateCompany(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "company updated", res)
}

func (c *CompanyController) DeleteCompany(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.companyService.DeleteCompany(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "company deleted", struct{}{})
}
