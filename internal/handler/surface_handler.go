package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// SurfaceHandler exposes the stateful workflow list surfaces. Each surface
// keeps its own filter, page and items per session; all mutations answer with
// a fresh snapshot.
type SurfaceHandler struct {
	surfaces *service.SurfaceRegistry
	auth     *service.AuthService
}

// NewSurfaceHandler constructs SurfaceHandler.
func NewSurfaceHandler(surfaces *service.SurfaceRegistry, auth *service.AuthService) *SurfaceHandler {
	return &SurfaceHandler{surfaces: surfaces, auth: auth}
}

type setFilterRequest struct {
	Filter models.ContentStatus `json:"filter" binding:"required"`
}

type setPageRequest struct {
	Page int `json:"page" binding:"required"`
}

func surfaceKind(c *gin.Context) models.ContentKind {
	return models.ContentKind(strings.ToUpper(c.Param("kind")))
}

func (h *SurfaceHandler) controller(c *gin.Context) (*service.ListController, gateway.Session, error) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		return nil, gateway.Session{}, err
	}
	ctrl, err := h.surfaces.Controller(claims.SessionID, surfaceKind(c))
	if err != nil {
		return nil, gateway.Session{}, err
	}
	return ctrl, sess, nil
}

// Snapshot godoc
// @Summary Current view state of a list surface
// @Tags Surfaces
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind (article or event)"
// @Success 200 {object} response.Envelope
// @Router /surfaces/{kind} [get]
func (h *SurfaceHandler) Snapshot(c *gin.Context) {
	ctrl, _, err := h.controller(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ctrl.Snapshot(), nil)
}

// Reload godoc
// @Summary Reload the surface's current filter and page
// @Tags Surfaces
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind (article or event)"
// @Success 200 {object} response.Envelope
// @Router /surfaces/{kind}/reload [post]
func (h *SurfaceHandler) Reload(c *gin.Context) {
	ctrl, sess, err := h.controller(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	snap, err := ctrl.Reload(c.Request.Context(), sess)
	if err != nil {
		// The snapshot still renders: stale items plus the error state.
		response.JSON(c, appErrors.FromError(err).Status, snap, nil)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// SetFilter godoc
// @Summary Switch the surface's status filter
// @Tags Surfaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind (article or event)"
// @Param payload body setFilterRequest true "Status filter"
// @Success 200 {object} response.Envelope
// @Router /surfaces/{kind}/filter [put]
func (h *SurfaceHandler) SetFilter(c *gin.Context) {
	ctrl, sess, err := h.controller(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req setFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	snap, err := ctrl.SetFilter(c.Request.Context(), sess, req.Filter)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrValidation.Code {
			response.Error(c, err)
			return
		}
		response.JSON(c, appErr.Status, snap, nil)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// SetPage godoc
// @Summary Move the surface to another page
// @Tags Surfaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind (article or event)"
// @Param payload body setPageRequest true "Page number"
// @Success 200 {object} response.Envelope
// @Router /surfaces/{kind}/page [put]
func (h *SurfaceHandler) SetPage(c *gin.Context) {
	ctrl, sess, err := h.controller(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req setPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	snap, err := ctrl.SetPage(c.Request.Context(), sess, req.Page)
	if err != nil {
		response.JSON(c, appErrors.FromError(err).Status, snap, nil)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}
