package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"garment-oms/internal/services"
	"garment-oms/pkg/api"
)

type BoardController struct {
	boardService services.BoardServiceInterface
	logger       *zap.Logger
}

func NewBoardController(boardService services.BoardServiceInterface, logger *zap.Logger) *BoardController {
	return &BoardController{boardService: boardService, logger: logger}
}

func (c *BoardController) GetBoard(ctx echo.Context) error {
	res, err := c.boardService.GetBoard(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "board fetched", res)
}
