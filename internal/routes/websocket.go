package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/pkg/service"
	"garment-oms/pkg/websocket"
)

func runWebSocketRouter(g *echo.Group, hub *websocket.Hub, jwtSvc service.JWTService, logger *zap.Logger) {
	ctrl := controllers.NewWebSocketController(hub, jwtSvc, logger)

	// Auth happens inside the handler via the token query param.
	g.GET("/ws/board", ctrl.ServeWs)
}
