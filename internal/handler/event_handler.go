package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// EventHandler exposes admission event endpoints.
type EventHandler struct {
	events *service.EventService
	auth   *service.AuthService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events *service.EventService, auth *service.AuthService) *EventHandler {
	return &EventHandler{events: events, auth: auth}
}

// List godoc
// @Summary List events by status
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param status path string true "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /events/status/{status} [get]
func (h *EventHandler) List(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	events, pagination, err := h.events.List(c.Request.Context(), sess, models.ContentStatus(c.Param("status")), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Get godoc
// @Summary Get event detail
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"allowed_transitions": h.events.AllowedTransitions(claims, event),
	}
	response.JSON(c, http.StatusOK, event, nil, meta)
}

// Create godoc
// @Summary Create a pending event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.events.Create(c.Request.Context(), sess, claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Transition godoc
// @Summary Apply a workflow transition to an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body transitionRequest true "Transition name"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/transition [post]
func (h *EventHandler) Transition(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.events.Transition(c.Request.Context(), sess, claims, c.Param("id"), req.Transition)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"allowed_transitions": h.events.AllowedTransitions(claims, event),
	}
	response.JSON(c, http.StatusOK, event, nil, meta)
}

// Register godoc
// @Summary Register the current student for an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/registration [post]
func (h *EventHandler) Register(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Register(c.Request.Context(), sess, claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Unregister godoc
// @Summary Withdraw the current student's registration
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/registration [delete]
func (h *EventHandler) Unregister(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Unregister(c.Request.Context(), sess, claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
