package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runCompanyRouter(g *echo.Group, companyService services.CompanyServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewCompanyController(companyService, logger)
	admin := authMW.RequireRole(entities.RoleAdmin)

	g.GET("/companies", ctrl.GetCompanies)
	g.GET("/companies/:id", ctrl.FindCompany)
	g.POST("/companies", ctrl.CreateCompany, admin)
	g.PUT("/companies/:id", ctrl.UpdateCompany, admin)
	g.DELETE("/companies/:id", ctrl.DeleteCompany, admin)
}
