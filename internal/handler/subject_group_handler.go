package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// SubjectGroupHandler exposes subject group management endpoints.
type SubjectGroupHandler struct {
	groups *service.SubjectGroupService
	auth   *service.AuthService
}

// NewSubjectGroupHandler constructs SubjectGroupHandler.
func NewSubjectGroupHandler(groups *service.SubjectGroupService, auth *service.AuthService) *SubjectGroupHandler {
	return &SubjectGroupHandler{groups: groups, auth: auth}
}

type toggleSubjectRequest struct {
	Draft     models.SubjectGroupDraft `json:"draft"`
	SubjectID string                   `json:"subject_id" binding:"required"`
}

// List godoc
// @Summary List subject groups
// @Tags SubjectGroups
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /subject-groups [get]
func (h *SubjectGroupHandler) List(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	groups, pagination, err := h.groups.List(c.Request.Context(), sess, catalogFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, pagination)
}

// Subjects godoc
// @Summary List all exam subjects for the group editor
// @Tags SubjectGroups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectGroupHandler) Subjects(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	subjects, err := h.groups.Subjects(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// ToggleSubject godoc
// @Summary Toggle one subject in a draft selection
// @Tags SubjectGroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body toggleSubjectRequest true "Draft and subject"
// @Success 200 {object} response.Envelope
// @Router /subject-groups/draft/toggle [post]
func (h *SubjectGroupHandler) ToggleSubject(c *gin.Context) {
	var req toggleSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	draft, err := h.groups.ToggleSubject(req.Draft, req.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"can_save": h.groups.CanSave(draft)}
	response.JSON(c, http.StatusOK, draft, nil, meta)
}

// Save godoc
// @Summary Create or update a subject group
// @Tags SubjectGroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SubjectGroupDraft true "Group draft"
// @Success 200 {object} response.Envelope
// @Router /subject-groups [post]
func (h *SubjectGroupHandler) Save(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft models.SubjectGroupDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.groups.Save(c.Request.Context(), sess, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	if draft.ID == "" {
		response.Created(c, group)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// ToggleStatus godoc
// @Summary Toggle a subject group's soft-delete flag
// @Tags SubjectGroups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subject group ID"
// @Success 204
// @Router /subject-groups/{id}/toggle [put]
func (h *SubjectGroupHandler) ToggleStatus(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.groups.ToggleStatus(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
