package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/middleware"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	"github.com/ChienNQuang/nextuni-portal-api/internal/workflow"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/config"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type fakeAuthGateway struct{}

func (fakeAuthGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	return &gateway.LoginResult{
		Token: "upstream-token",
		User:  models.UserInfo{ID: "u-1", Email: email, Role: models.RoleStaff, UniversityID: "uni-1"},
	}, nil
}

type fakeSessionStore struct {
	tokens map[string]string
}

func (f *fakeSessionStore) Save(ctx context.Context, sessionID, token string) error {
	f.tokens[sessionID] = token
	return nil
}

func (f *fakeSessionStore) Token(ctx context.Context, sessionID string) (string, error) {
	token, ok := f.tokens[sessionID]
	if !ok {
		return "", appErrors.ErrSessionExpired
	}
	return token, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(f.tokens, sessionID)
	return nil
}

type fakeArticleGateway struct {
	articles map[string]*models.Article
}

func (f *fakeArticleGateway) ListArticles(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Article, gateway.PageInfo, error) {
	var out []models.Article
	for _, a := range f.articles {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	// The upstream gateway clamps page numbers to the last available page.
	if page > 1 {
		page = 1
	}
	return out, gateway.PageInfo{PageNumber: page, TotalPages: 1, TotalCount: len(out)}, nil
}

func (f *fakeArticleGateway) GetArticle(ctx context.Context, sess gateway.Session, id string) (*models.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeArticleGateway) CreateArticle(ctx context.Context, sess gateway.Session, in gateway.CreateArticleInput) (string, error) {
	id := "a-new"
	f.articles[id] = &models.Article{ID: id, Title: in.Title, Content: in.Content, UniversityID: in.UniversityID, Status: models.StatusDraft, CreatedAt: time.Now()}
	return id, nil
}

func (f *fakeArticleGateway) UpdateArticle(ctx context.Context, sess gateway.Session, id string, in gateway.UpdateArticleInput) error {
	a, ok := f.articles[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	a.Title, a.Content = in.Title, in.Content
	return nil
}

func (f *fakeArticleGateway) SubmitArticle(ctx context.Context, sess gateway.Session, id string) error {
	f.articles[id].Status = models.StatusPending
	return nil
}

func (f *fakeArticleGateway) ApproveArticle(ctx context.Context, sess gateway.Session, id string) error {
	f.articles[id].Status = models.StatusPublished
	return nil
}

func (f *fakeArticleGateway) RejectArticle(ctx context.Context, sess gateway.Session, id string) error {
	f.articles[id].Status = models.StatusDraft
	return nil
}

func (f *fakeArticleGateway) ApproveEvent(ctx context.Context, sess gateway.Session, id string) error {
	return appErrors.ErrNotFound
}

func (f *fakeArticleGateway) RejectEvent(ctx context.Context, sess gateway.Session, id string) error {
	return appErrors.ErrNotFound
}

func (f *fakeArticleGateway) CancelEvent(ctx context.Context, sess gateway.Session, id string) error {
	return appErrors.ErrNotFound
}

type fakeEventLister struct{}

func (fakeEventLister) ListEvents(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Event, gateway.PageInfo, error) {
	return []models.Event{}, gateway.PageInfo{PageNumber: page}, nil
}

// testEnv wires real services over in-memory fakes for handler tests.
type testEnv struct {
	auth     *service.AuthService
	surfaces *service.SurfaceRegistry
	articles *service.ArticleService
	gw       *fakeArticleGateway
	claims   *models.JWTClaims
}

func newTestEnv(t *testing.T, seed ...*models.Article) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeSessionStore{tokens: map[string]string{"sess-1": "upstream-token"}}
	auth := service.NewAuthService(fakeAuthGateway{}, store, config.JWTConfig{Secret: "test", Expiration: time.Hour, Issuer: "test"}, nil, zap.NewNop())

	gw := &fakeArticleGateway{articles: make(map[string]*models.Article)}
	for _, a := range seed {
		gw.articles[a.ID] = a
	}

	exec := service.NewTransitionExecutor(gw, nil, zap.NewNop())
	articles := service.NewArticleService(gw, workflow.NewMachine(), exec, nil, zap.NewNop(), 10)
	surfaces := service.NewSurfaceRegistry(gw, fakeEventLister{}, 10, zap.NewNop())

	return &testEnv{
		auth:     auth,
		surfaces: surfaces,
		articles: articles,
		gw:       gw,
		claims:   &models.JWTClaims{UserID: "u-1", SessionID: "sess-1", Role: models.RoleStaff, UniversityID: "uni-1"},
	}
}

func (e *testEnv) request(t *testing.T, method, target string, body interface{}, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set(middleware.ContextUserKey, e.claims)
	return c, rec
}

type envelopeBody struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
