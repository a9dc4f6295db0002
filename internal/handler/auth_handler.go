package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	surfaces *service.SurfaceRegistry
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService, surfaces *service.SurfaceRegistry) *AuthHandler {
	return &AuthHandler{auth: auth, surfaces: surfaces}
}

// Login godoc
// @Summary Log in with gateway credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Logout godoc
// @Summary Log out and drop the server-side session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	h.surfaces.Drop(claims.SessionID)
	response.NoContent(c)
}

// Me godoc
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.UserInfo{
		ID:           claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		UniversityID: claims.UniversityID,
	}, nil)
}
