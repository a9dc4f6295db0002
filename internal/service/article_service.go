package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/workflow"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type articleGateway interface {
	ListArticles(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Article, gateway.PageInfo, error)
	GetArticle(ctx context.Context, sess gateway.Session, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, sess gateway.Session, in gateway.CreateArticleInput) (string, error)
	UpdateArticle(ctx context.Context, sess gateway.Session, id string, in gateway.UpdateArticleInput) error
}

// ArticleService drives the counselling article surfaces.
type ArticleService struct {
	gw        articleGateway
	machine   *workflow.Machine
	executor  *TransitionExecutor
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewArticleService constructs the service.
func NewArticleService(gw articleGateway, machine *workflow.Machine, executor *TransitionExecutor, validate *validator.Validate, logger *zap.Logger, pageSize int) *ArticleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ArticleService{gw: gw, machine: machine, executor: executor, validator: validate, logger: logger, pageSize: pageSize}
}

// CreateArticleRequest describes the create payload.
type CreateArticleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateArticleRequest describes the draft update payload.
type UpdateArticleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// List returns one page of articles in the given status.
func (s *ArticleService) List(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Article, *models.Pagination, error) {
	if !models.ValidStatusFilter(models.KindArticle, status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown article status filter")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	articles, info, err := s.gw.ListArticles(ctx, sess, status, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: info.PageNumber, PageSize: pageSize, TotalPages: info.TotalPages, TotalCount: info.TotalCount}
	return articles, pagination, nil
}

// Get returns an article by id.
func (s *ArticleService) Get(ctx context.Context, sess gateway.Session, id string) (*models.Article, error) {
	return s.gw.GetArticle(ctx, sess, id)
}

// Create validates the payload and creates a draft article. Staff articles
// belong to the author's university; admin articles are system-wide.
func (s *ArticleService) Create(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, req CreateArticleRequest) (*models.Article, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and content are required")
	}
	ownerScope := actor.UniversityID
	if actor.Role == models.RoleAdmin {
		ownerScope = models.OwnerScopeSystem
	}
	id, err := s.gw.CreateArticle(ctx, sess, gateway.CreateArticleInput{
		Title:        req.Title,
		Content:      req.Content,
		UniversityID: ownerScope,
	})
	if err != nil {
		return nil, err
	}
	return s.gw.GetArticle(ctx, sess, id)
}

// Update modifies a draft article. Only drafts are editable; the owner gate
// here is advisory, the gateway re-checks it.
func (s *ArticleService) Update(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, id string, req UpdateArticleRequest) (*models.Article, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and content are required")
	}
	article, err := s.gw.GetArticle(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusDraft {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only draft articles can be edited")
	}
	if actor.Role == models.RoleStaff && article.UniversityID != actor.UniversityID {
		return nil, appErrors.ErrForbidden
	}
	if err := s.gw.UpdateArticle(ctx, sess, id, gateway.UpdateArticleInput{Title: req.Title, Content: req.Content}); err != nil {
		return nil, err
	}
	return s.gw.GetArticle(ctx, sess, id)
}

// Transition applies one workflow transition to an article. The machine is
// consulted against the item's exact current status before the executor
// fires; on success the single item is re-fetched as the view refresh.
func (s *ArticleService) Transition(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, id string, t models.Transition) (*models.Article, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	article, err := s.gw.GetArticle(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !s.machine.CanTransition(models.KindArticle, article.Status, actor.Role, t) {
		return nil, appErrors.Clone(appErrors.ErrIllegalTransition, "transition "+string(t)+" not allowed from status "+string(article.Status))
	}
	if err := s.executor.Execute(ctx, sess, models.KindArticle, id, t); err != nil {
		return nil, err
	}
	return s.gw.GetArticle(ctx, sess, id)
}

// AllowedTransitions lists the controls to render for an article.
func (s *ArticleService) AllowedTransitions(actor *models.JWTClaims, article *models.Article) []models.Transition {
	if actor == nil || article == nil {
		return []models.Transition{}
	}
	return s.machine.AllowedTransitions(models.KindArticle, article.Status, actor.Role)
}
