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

// ArticleHandler exposes counselling article endpoints.
type ArticleHandler struct {
	articles *service.ArticleService
	auth     *service.AuthService
}

// NewArticleHandler constructs ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, auth *service.AuthService) *ArticleHandler {
	return &ArticleHandler{articles: articles, auth: auth}
}

// transitionRequest names the workflow transition to apply.
type transitionRequest struct {
	Transition models.Transition `json:"transition" binding:"required"`
}

// List godoc
// @Summary List articles by status
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param status path string true "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /articles/status/{status} [get]
func (h *ArticleHandler) List(c *gin.Context) {
	_, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	articles, pagination, err := h.articles.List(c.Request.Context(), sess, models.ContentStatus(c.Param("status")), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, articles, pagination)
}

// Get godoc
// @Summary Get article detail
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.articles.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"allowed_transitions": h.articles.AllowedTransitions(claims, article),
	}
	response.JSON(c, http.StatusOK, article, nil, meta)
}

// Create godoc
// @Summary Create a draft article
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateArticleRequest true "Article payload"
// @Success 201 {object} response.Envelope
// @Router /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	article, err := h.articles.Create(c.Request.Context(), sess, claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, article)
}

// Update godoc
// @Summary Update a draft article
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body service.UpdateArticleRequest true "Article payload"
// @Success 200 {object} response.Envelope
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	claims, sess, err := currentSession(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	article, err := h.articles.Update(c.Request.Context(), sess, claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// Transition godoc
// @Summary Apply a workflow transition to an article
// @Tags Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body transitionRequest true "Transition name"
// @Success 200 {object} response.Envelope
// @Router /articles/{id}/transition [post]
func (h *ArticleHandler) Transition(c *gin.Context) {
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
	article, err := h.articles.Transition(c.Request.Context(), sess, claims, c.Param("id"), req.Transition)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"allowed_transitions": h.articles.AllowedTransitions(claims, article),
	}
	response.JSON(c, http.StatusOK, article, nil, meta)
}
