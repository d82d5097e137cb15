package handler

import (
	"net/http"

	"umkm-invoice/internal/service"
	"umkm-invoice/pkg/pagination"
	"umkm-invoice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity-logs", h.GetActivityLogs)
}

// GetActivityLogs returns recorded changes, newest first
// @Summary      List activity logs
// @Tags         activity
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 20, max: 100)"
// @Success      200    {object}  response.Response
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) GetActivityLogs(c *gin.Context) {
	p := pagination.Parse(c)

	logs, total, err := h.activityService.GetActivityLogs(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, p.Page, p.Limit, total))
}
