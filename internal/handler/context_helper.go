package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/middleware"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// currentClaims extracts the authenticated user's claims from the gin context.
func currentClaims(c *gin.Context) (*models.JWTClaims, error) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, appErrors.ErrUnauthorized
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok || claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// currentSession resolves the upstream gateway session for the authenticated
// user. An expired redis entry surfaces as SESSION_EXPIRED even when the
// portal JWT itself is still valid.
func currentSession(c *gin.Context, auth *service.AuthService) (*models.JWTClaims, gateway.Session, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return nil, gateway.Session{}, err
	}
	sess, err := auth.SessionFor(c.Request.Context(), claims)
	if err != nil {
		return nil, gateway.Session{}, err
	}
	return claims, sess, nil
}
