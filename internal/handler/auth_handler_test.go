package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func TestAuthHandlerLogin(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.auth, env.surfaces)

	c, rec := env.request(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "staff@uni.edu",
		"password": "secret",
	})
	h.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, models.RoleStaff, resp.User.Role)
}

func TestAuthHandlerLoginInvalidPayload(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.auth, env.surfaces)

	c, rec := env.request(t, http.MethodPost, "/auth/login", map[string]string{"email": "staff@uni.edu"})
	h.Login(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestAuthHandlerLogoutDropsSurfaces(t *testing.T) {
	env := newTestEnv(t, &models.Article{ID: "a-1", Title: "t", Content: "c", UniversityID: "uni-1", Status: models.StatusDraft})
	h := NewAuthHandler(env.auth, env.surfaces)

	ctrl, err := env.surfaces.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)

	c, rec := env.request(t, http.MethodPost, "/auth/logout", nil)
	h.Logout(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, rec.Code)

	fresh, err := env.surfaces.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)
	require.NotSame(t, ctrl, fresh, "logout discards surface state")
}

func TestAuthHandlerMe(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.auth, env.surfaces)

	c, rec := env.request(t, http.MethodGet, "/auth/me", nil)
	h.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var user models.UserInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, "uni-1", user.UniversityID)
}
