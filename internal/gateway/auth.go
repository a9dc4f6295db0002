package gateway

import (
	"context"
	"net/http"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type loginWire struct {
	Token string `json:"token" validate:"required"`
	User  struct {
		ID           string `json:"id" validate:"required"`
		Email        string `json:"email" validate:"required"`
		FullName     string `json:"fullName"`
		Role         string `json:"role" validate:"required"`
		UniversityID string `json:"universityId"`
	} `json:"user"`
}

// LoginResult carries the upstream token and the authenticated user.
type LoginResult struct {
	Token string
	User  models.UserInfo
}

// Login exchanges credentials for a gateway token. Login is the one call
// that never carries a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var wire loginWire
	if err := c.call(ctx, Session{}, http.MethodPost, "/auth/login", nil, body, &wire); err != nil {
		return nil, err
	}
	if err := c.checkWire(wire); err != nil {
		return nil, err
	}

	role := models.UserRole(wire.User.Role)
	switch role {
	case models.RoleAdmin, models.RoleStaff, models.RoleStudent:
	default:
		return nil, appErrors.Clone(appErrors.ErrGatewayMalformed, "unknown role in gateway login response")
	}

	return &LoginResult{
		Token: wire.Token,
		User: models.UserInfo{
			ID:           wire.User.ID,
			Email:        wire.User.Email,
			FullName:     wire.User.FullName,
			Role:         role,
			UniversityID: wire.User.UniversityID,
		},
	}, nil
}
