package handler

import (
	"net/http"

	"umkm-invoice/internal/service"
	"umkm-invoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/sales-summary", h.SalesSummary)
		reports.GET("/sales-summary/export", h.ExportSalesSummary)
		reports.GET("/dashboard", h.Dashboard)
	}
}

// SalesSummary returns per-day sales totals and the totals of the range
// @Summary      Sales summary
// @Tags         reports
// @Produce      json
// @Param        start_date  query     string  false  "Inclusive start date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Inclusive end date (YYYY-MM-DD)"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var query service.SalesSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "Invalid query: "+err.Error())
		return
	}

	res, err := h.reportService.SalesSummary(c.Request.Context(), query)
	writeResult(c, http.StatusOK, res, err)
}

// ExportSalesSummary downloads the sales summary as a spreadsheet
// @Summary      Export sales summary
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format      query  string  false  "xlsx (default) or csv"
// @Param        start_date  query  string  false  "Inclusive start date (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Inclusive end date (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /api/reports/sales-summary/export [get]
func (h *ReportHandler) ExportSalesSummary(c *gin.Context) {
	var query service.SalesSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "Invalid query: "+err.Error())
		return
	}

	res, err := h.reportService.ExportSalesSummary(c.Request.Context(), query, c.Query("format"))
	if err != nil || !res.OK() {
		writeResult(c, http.StatusOK, res, err)
		return
	}
	sendFile(c, res.Value)
}

// Dashboard returns headline metrics
// @Summary      Dashboard metrics
// @Tags         reports
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	metrics, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, metrics))
}
