package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// ExportHandler streams CSV/PDF renditions of the content listings.
type ExportHandler struct {
	exports *service.ExportService
	auth    *service.AuthService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, auth *service.AuthService) *ExportHandler {
	return &ExportHandler{exports: exports, auth: auth}
}

func (h *ExportHandler) stream(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Bytes)
}

// Articles godoc
// @Summary Export the article listing for one status
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param status path string true "Status filter"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/articles/{status} [get]
func (h *ExportHandler) Articles(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.ExportArticles(c.Request.Context(), sess, models.ContentStatus(c.Param("status")), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, result)
}

// Events godoc
// @Summary Export the event listing for one status
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param status path string true "Status filter"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/events/{status} [get]
func (h *ExportHandler) Events(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.ExportEvents(c.Request.Context(), sess, models.ContentStatus(c.Param("status")), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, result)
}
