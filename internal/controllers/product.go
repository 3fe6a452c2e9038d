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

type ProductController struct {
	productService services.ProductServiceInterface
	logger         *zap.Logger
}

func NewProductController(productService services.ProductServiceInterface, logger *zap.Logger) *ProductController {
	return &ProductController{productService: productService, logger: logger}
}

func (c *ProductController) GetProducts(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.productService.GetProducts(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "products fetched", list, total, filter.Page, filter.Limit)
}

func (c *ProductController) FindProduct(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.productService.FindProduct(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "product fetched", res)
}

func (c *ProductController) CreateProduct(ctx echo.Context) error {
	var payload dto.CreateProductDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.productService.CreateProduct(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "product created", res)
}

func (c *ProductController) UpdateProduct(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.UpdateProductDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.productService.UpdateProduct(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "product updated", res)
}

func (c *ProductController) DeleteProduct(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.productService.DeleteProduct(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "product deleted", struct{}{})
}
