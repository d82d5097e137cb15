package handler

import (
	"net/http"

	"umkm-invoice/internal/service"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/drafts")
	{
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.POST("/:id/lines", h.AddLine)
		drafts.DELETE("/:id/lines", h.ClearLines)
		drafts.DELETE("/:id/lines/:index", h.RemoveLine)
		drafts.POST("/:id/lines/:index/product", h.SaveLineAsProduct)
		drafts.POST("/:id/submit", h.SubmitDraft)
	}
}

// CreateDraft starts composing an invoice
// @Summary      Create draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateDraftRequest  false  "Invoice header"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req service.CreateDraftRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	res, err := h.draftService.CreateDraft(c.Request.Context(), req)
	writeResult(c, http.StatusCreated, res, err)
}

// GetDraft returns a draft with running totals
// @Summary      Get draft
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	res, err := h.draftService.GetDraft(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, res, err)
}

// DiscardDraft drops a draft without creating an invoice
// @Summary      Discard draft
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	res, err := h.draftService.DiscardDraft(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, res, err)
}

// AddLine appends a line to a draft
// @Summary      Add draft line
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Draft ID"
// @Param        payload  body  service.InvoiceLineRequest  true  "Line"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *gin.Context) {
	var req service.InvoiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	res, err := h.draftService.AddLine(c.Request.Context(), c.Param("id"), req)
	writeResult(c, http.StatusOK, res, err)
}

// RemoveLine deletes a line by its position
// @Summary      Remove draft line
// @Tags         drafts
// @Produce      json
// @Param        id     path  string  true  "Draft ID"
// @Param        index  path  int     true  "Zero-based line index"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id}/lines/{index} [delete]
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	res, err := h.draftService.RemoveLine(c.Request.Context(), c.Param("id"), index)
	writeResult(c, http.StatusOK, res, err)
}

// ClearLines removes every line from a draft
// @Summary      Clear draft lines
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id}/lines [delete]
func (h *DraftHandler) ClearLines(c *gin.Context) {
	res, err := h.draftService.ClearLines(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusOK, res, err)
}

// SaveLineAsProduct adds a draft line to the product catalog
// @Summary      Save draft line as product
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path  string                            true   "Draft ID"
// @Param        index    path  int                               true   "Zero-based line index"
// @Param        payload  body  service.SaveLineAsProductRequest  false  "Optional description"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response  "Product already exists"
// @Router       /api/drafts/{id}/lines/{index}/product [post]
func (h *DraftHandler) SaveLineAsProduct(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req service.SaveLineAsProductRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	res, err := h.draftService.SaveLineAsProduct(c.Request.Context(), c.Param("id"), index, req)
	writeResult(c, http.StatusCreated, res, err)
}

// SubmitDraft turns the draft into a stored invoice
// @Summary      Submit draft
// @Description  On success the draft is consumed; on failure it is kept unchanged.
// @Tags         drafts
// @Produce      json
// @Param        id  path  string  true  "Draft ID"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	res, err := h.draftService.SubmitDraft(c.Request.Context(), c.Param("id"))
	writeResult(c, http.StatusCreated, res, err)
}
