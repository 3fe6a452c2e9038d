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

type ComplaintController struct {
	complaintService services.ComplaintServiceInterface
	logger           *zap.Logger
}

func NewComplaintController(complaintService services.ComplaintServiceInterface, logger *zap.Logger) *ComplaintController {
	return &ComplaintController{complaintService: complaintService, logger: logger}
}

func (c *ComplaintController) GetComplaints(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.complaintService.GetComplaints(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "complaints fetched", list, total, filter.Page, filter.Limit)
}

func (c *ComplaintController) FindComplaint(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.complaintService.FindComplaint(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "complaint fetched", res)
}

func (c *ComplaintController) CreateComplaint(ctx echo.Context) error {
	var payload dto.CreateComplaintDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.complaintService.CreateComplaint(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "complaint created", res)
}

func (c *ComplaintController) ResolveComplaint(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.ResolveComplaintDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.complaintService.ResolveComplaint(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "complaint resolved", res)
}

func (c *ComplaintController) DeleteComplaint(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.complaintService.DeleteComplaint(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "complaint deleted", struct{}{})
}
