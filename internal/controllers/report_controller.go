package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"garment-oms/internal/dto"
	"garment-oms/internal/services"
	"garment-oms/pkg/api"
	"garment-oms/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetOrdersReport serves the orders report. With ?format=xlsx it streams a
// spreadsheet of the full filtered set; otherwise it behaves like a paged
// JSON listing.
func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		// Exports carry the whole filtered set, not a page.
		filter.Page = 1
		filter.Offset = 0
		filter.Limit = 100000
	}

	list, total, err := c.reportService.GetOrdersReport(reqCtx, filter)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, list)
	}
	return api.SuccessList(ctx, "orders report fetched", list, total, filter.Page, filter.Limit)
}

var orderReportHeaders = []string{
	"Order Number", "Company", "Client", "Product", "Quantity", "Unit Price",
	"Tax %", "Advance Paid", "Total", "Order Date", "Expected Delivery",
	"Current Stage", "Progress %", "Delayed", "Completed At",
}

func orderReportRow(item dto.OrderDTO) []interface{} {
	currentStage := ""
	if item.CurrentStage != nil {
		currentStage = *item.CurrentStage
	}
	expected := ""
	if item.ExpectedDeliveryDate != nil {
		expected = *item.ExpectedDeliveryDate
	}
	completed := ""
	if item.CompletedAt != nil {
		completed = *item.CompletedAt
	}
	delayed := "no"
	if item.IsDelayed {
		delayed = "yes"
	}

	return []interface{}{
		item.OrderNumber, item.CompanyID, item.ClientID, item.ProductID,
		item.Quantity, item.UnitPrice, item.TaxPercent, item.AdvancePaid,
		item.TotalAmount, item.OrderDate, expected, currentStage,
		item.Progress, delayed, completed,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.OrderDTO) error {
	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &orderReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "O1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderReportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "J", "K", 16)
	f.SetColWidth(sheet, "L", "L", 20)
	f.SetColWidth(sheet, "O", "O", 20)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
