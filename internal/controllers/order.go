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

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	list, total, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessList(ctx, "orders fetched", list, total, filter.Page, filter.Limit)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.orderService.FindOrder(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "order fetched", res)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.orderService.CreateOrder(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "order created", res)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.orderService.UpdateOrder(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "order updated", res)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := c.orderService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "order deleted", struct{}{})
}

// ChangeStage moves an order to another pipeline stage. The same endpoint
// serves board drag-and-drop and the order detail page.
func (c *OrderController) ChangeStage(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.ChangeStageDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.orderService.ChangeStage(reqCtx, id, payload, actorID)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "order stage changed", res)
}

func (c *OrderController) GetStageHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	history, err := c.orderService.GetStageHistory(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "stage history fetched", history)
}

func (c *OrderController) AddPayment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	var payload dto.CreatePaymentDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	res, err := c.orderService.AddPayment(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "payment recorded", res)
}

func (c *OrderController) ListPayments(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	list, err := c.orderService.ListPayments(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "payments fetched", list)
}
