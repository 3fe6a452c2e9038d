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

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientService services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientService: clientService, logger: logger}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.clientService.GetClients(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "clients fetched", list, total, filter.Page, filter.Limit)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.clientService.FindClient(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "client fetched", res)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	var payload dto.CreateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.clientService.CreateClient(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "client created", res)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.UpdateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.clientService.UpdateClient(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "client updated", res)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.clientService.DeleteClient(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "client deleted", struct{}{})
}
