package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runReportRouter(g *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewReportController(reportService, logger)

	g.GET("/reports/orders", ctrl.GetOrdersReport, authMW.RequireRole(entities.RoleAdmin))
}
