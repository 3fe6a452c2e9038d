package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/services"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewAuthController(authService, logger)

	public.POST("/auth/login", ctrl.Login)
	public.POST("/auth/refresh", ctrl.Refresh)
	secure.GET("/auth/me", ctrl.Me)
}
