package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// ReportHandler serves sales summaries grouped by local business day.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles GET /reports/daily?date=YYYY-MM-DD. Without a date the
// caller's current local day is used.
func (h *ReportHandler) Daily(c *gin.Context) {
	report, err := h.reportService.DailyReport(c.Request.Context(), GetUserID(c), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// Sales handles GET /reports/sales?days=N.
func (h *ReportHandler) Sales(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		response.BadRequest(c, "days must be a number")
		return
	}

	trend, err := h.reportService.SalesTrend(c.Request.Context(), GetUserID(c), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales trend retrieved successfully", trend)
}
