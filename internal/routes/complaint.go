package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/entities"
	"garment-oms/internal/services"
	"garment-oms/pkg/middleware"
)

func runComplaintRouter(g *echo.Group, complaintService services.ComplaintServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewComplaintController(complaintService, logger)
	admin := authMW.RequireRole(entities.RoleAdmin)

	g.GET("/complaints", ctrl.GetComplaints)
	g.GET("/complaints/:id", ctrl.FindComplaint)
	g.POST("/complaints", ctrl.CreateComplaint)
	g.PATCH("/complaints/:id/resolve", ctrl.ResolveComplaint, admin)
	g.DELETE("/complaints/:id", ctrl.DeleteComplaint, admin)
}
