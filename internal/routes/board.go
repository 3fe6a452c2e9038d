package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/controllers"
	"garment-oms/internal/services"
)

func runBoardRouter(g *echo.Group, boardService services.BoardServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewBoardController(boardService, logger)

	g.GET("/board", ctrl.GetBoard)
}
