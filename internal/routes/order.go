package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runOrderRouter(g *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewOrderController(orderService, logger)
	admin := authMW.RequireRole(entities.RoleAdmin)

	g.GET("/orders", ctrl.GetOrders)
	g.GET("/orders/:id", ctrl.FindOrder)
	g.POST("/orders", ctrl.CreateOrder, admin)
	g.PUT("/orders/:id", ctrl.UpdateOrder, admin)
	g.DELETE("/orders/:id", ctrl.DeleteOrder, admin)

	g.PATCH("/orders/:id/stage", ctrl.ChangeStage, admin)
	g.GET("/orders/:id/history", ctrl.GetStageHistory)

	g.GET("/orders/:id/payments", ctrl.ListPayments)
	g.POST("/orders/:id/payments", ctrl.AddPayment, admin)
}
