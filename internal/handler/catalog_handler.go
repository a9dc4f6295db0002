package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// CatalogHandler exposes the university and major catalogues.
type CatalogHandler struct {
	catalog *service.CatalogService
	auth    *service.AuthService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, auth *service.AuthService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, auth: auth}
}

func catalogFilterFromQuery(c *gin.Context) models.CatalogFilter {
	var filter models.CatalogFilter
	filter.Search = c.Query("search")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		filter.PageSize = size
	}
	return filter
}

// ListUniversities godoc
// @Summary List universities
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or code"
// @Param includeDeleted query bool false "Include soft-deleted entries"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /universities [get]
func (h *CatalogHandler) ListUniversities(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	universities, pagination, err := h.catalog.ListUniversities(c.Request.Context(), sess, catalogFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, universities, pagination)
}

// ToggleUniversity godoc
// @Summary Toggle a university's soft-delete flag
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "University ID"
// @Success 204
// @Router /universities/{id}/toggle [put]
func (h *CatalogHandler) ToggleUniversity(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalog.ToggleUniversityStatus(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListMajors godoc
// @Summary List majors for a university
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "University ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /universities/{id}/majors [get]
func (h *CatalogHandler) ListMajors(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	majors, pagination, err := h.catalog.ListMajors(c.Request.Context(), sess, c.Param("id"), catalogFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, majors, pagination)
}

// ToggleMajor godoc
// @Summary Toggle a major's soft-delete flag
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Major ID"
// @Success 204
// @Router /majors/{id}/toggle [put]
func (h *CatalogHandler) ToggleMajor(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.catalog.ToggleMajorStatus(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
