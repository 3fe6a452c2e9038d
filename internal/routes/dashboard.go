package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runDashboardRouter(g *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewDashboardController(dashboardService, logger)

	g.GET("/dashboard", ctrl.GetDashboard, authMW.RequireRole(entities.RoleAdmin))
}
