package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func TestArticleHandlerCreate(t *testing.T) {
	env := newTestEnv(t)
	h := NewArticleHandler(env.articles, env.auth)

	c, rec := env.request(t, http.MethodPost, "/articles", map[string]string{
		"title":   "Admissions 2026",
		"content": "body",
	})
	h.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	env2 := decodeEnvelope(t, rec)
	var article models.Article
	require.NoError(t, json.Unmarshal(env2.Data, &article))
	require.Equal(t, models.StatusDraft, article.Status)
	require.Equal(t, "uni-1", article.UniversityID)
}

func TestArticleHandlerCreateInvalidPayload(t *testing.T) {
	env := newTestEnv(t)
	h := NewArticleHandler(env.articles, env.auth)

	c, rec := env.request(t, http.MethodPost, "/articles", map[string]string{"title": "no content"})
	h.Create(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestArticleHandlerTransition(t *testing.T) {
	env := newTestEnv(t, &models.Article{ID: "a-1", Title: "t", Content: "c", UniversityID: "uni-1", Status: models.StatusDraft})
	h := NewArticleHandler(env.articles, env.auth)

	c, rec := env.request(t, http.MethodPost, "/articles/a-1/transition",
		map[string]string{"transition": "submit"},
		gin.Param{Key: "id", Value: "a-1"},
	)
	h.Transition(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	var article models.Article
	require.NoError(t, json.Unmarshal(body.Data, &article))
	require.Equal(t, models.StatusPending, article.Status)
	require.Contains(t, body.Meta, "allowed_transitions")
}

func TestArticleHandlerIllegalTransitionConflicts(t *testing.T) {
	env := newTestEnv(t, &models.Article{ID: "a-1", Title: "t", Content: "c", UniversityID: "uni-1", Status: models.StatusDraft})
	h := NewArticleHandler(env.articles, env.auth)

	// Staff cannot approve drafts.
	c, rec := env.request(t, http.MethodPost, "/articles/a-1/transition",
		map[string]string{"transition": "approve"},
		gin.Param{Key: "id", Value: "a-1"},
	)
	h.Transition(c)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, appErrors.ErrIllegalTransition.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestArticleHandlerExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	env.claims.SessionID = "gone"
	h := NewArticleHandler(env.articles, env.auth)

	c, rec := env.request(t, http.MethodGet, "/articles/status/Draft", nil, gin.Param{Key: "status", Value: "Draft"})
	h.List(c)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, appErrors.ErrSessionExpired.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestArticleHandlerListUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	h := NewArticleHandler(env.articles, env.auth)

	c, rec := env.request(t, http.MethodGet, "/articles/status/Ongoing", nil, gin.Param{Key: "status", Value: "Ongoing"})
	h.List(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
