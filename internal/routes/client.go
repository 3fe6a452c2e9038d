package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runClientRouter(g *echo.Group, clientService services.ClientServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewClientController(clientService, logger)
	admin := authMW.RequireRole(entities.RoleAdmin)

	g.GET("/clients", ctrl.GetClients)
	g.GET("/clients/:id", ctrl.FindClient)
	g.POST("/clients", ctrl.CreateClient, admin)
	g.PUT("/clients/:id", ctrl.UpdateClient, admin)
	g.DELETE("/clients/:id", ctrl.DeleteClient, admin)
}
