package handler

import (
	"net/http"

	"umkm-invoice/internal/service"
	"umkm-invoice/pkg/pagination"
	"umkm-invoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/pdf", h.DownloadPDF)
	}
}

// ListInvoices returns invoices newest first
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        page            query     int     false  "Page number (default: 1)"
// @Param        limit           query     int     false  "Items per page (default: 20, max: 100)"
// @Param        status          query     string  false  "Draft, Sent or Paid"
// @Param        invoice_number  query     string  false  "Partial invoice number"
// @Success      200             {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var query service.InvoiceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "Invalid query: "+err.Error())
		return
	}
	p := pagination.Parse(c)
	query.Page, query.Limit = p.Page, p.Limit

	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, p.Page, p.Limit, total))
}

// CreateInvoice prices and stores an invoice with its lines
// @Summary      Create invoice
// @Description  Missing due_date, tax_rate and status fall back to company settings and Draft.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateInvoiceRequest  true  "Invoice payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response  "Customer not found"
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	res, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	writeResult(c, http.StatusCreated, res, err)
}

// GetInvoice returns an invoice with its lines and customer
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id  path  int  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	writeResult(c, http.StatusOK, res, err)
}

// DownloadPDF renders the invoice document
// @Summary      Download invoice PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id        path   int     true   "Invoice ID"
// @Param        template  query  string  false  "Template key; defaults to the saved template"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.invoiceService.RenderInvoice(c.Request.Context(), id, c.Query("template"))
	if err != nil || !res.OK() {
		writeResult(c, http.StatusOK, res, err)
		return
	}
	sendFile(c, res.Value)
}
