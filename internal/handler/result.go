package handler

import (
	"errors"
	"net/http"
	"strconv"

	"umkm-invoice/internal/middleware"
	"umkm-invoice/internal/service"
	"umkm-invoice/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeResult renders a service result. Duplicate and refused outcomes are
// conflicts; the duplicate carries the existing record as data.
func writeResult[T any](c *gin.Context, okStatus int, res service.Result[T], err error) {
	if err != nil {
		writeError(c, err)
		return
	}

	switch res.Kind {
	case service.KindOK:
		c.JSON(okStatus, response.SuccessWithMessage(okStatus, res.Message, res.Value))
	case service.KindDuplicate:
		c.JSON(http.StatusConflict, response.Fail(http.StatusConflict, res.Message, res.Existing))
	case service.KindRefused:
		c.JSON(http.StatusConflict, response.Fail(http.StatusConflict, res.Message, gin.H{"references": res.References}))
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, res.Message))
	case service.KindInvalid:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, res.Message))
	default:
		writeError(c, errors.New("unhandled result kind "+res.Kind.String()))
	}
}

// writeError hides store failures behind a generic message and logs them.
// The message carries the request id so a report can be matched to the log.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, verr.Error()))
		return
	}
	middleware.Logger(c).WithError(err).WithField("path", c.FullPath()).Error("request failed")

	msg := "internal server error"
	if id := middleware.RequestID(c); id != "" {
		msg += " (request " + id + ")"
	}
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, msg))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// parseID reads a positive integer path parameter. It writes the 400
// response itself and reports false when the value is unusable.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		badRequest(c, "invalid line index")
		return 0, false
	}
	return idx, true
}

func sendFile(c *gin.Context, file service.Download) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
