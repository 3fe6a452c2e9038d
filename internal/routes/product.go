package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runProductRouter(g *echo.Group, productService services.ProductServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewProductController(productService, logger)
	admin := authMW.RequireRole(entities.RoleAdmin)

	g.GET("/products", ctrl.GetProducts)
	g.GET("/products/:id", ctrl.FindProduct)
	g.POST("/products", ctrl.CreateProduct, admin)
	g.PUT("/products/:id", ctrl.UpdateProduct, admin)
	g.DELETE("/products/:id", ctrl.DeleteProduct, admin)
}
