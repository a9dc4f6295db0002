package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type surfaceArticleLister interface {
	ListArticles(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Article, gateway.PageInfo, error)
}

type surfaceEventLister interface {
	ListEvents(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Event, gateway.PageInfo, error)
}

// SurfaceRegistry hands out one ListController per (session, kind). Each
// dashboard list surface keeps its view state on the portal, so filter and
// page survive navigation and the stale-response guard has a single owner.
type SurfaceRegistry struct {
	mu          sync.Mutex
	controllers map[string]*ListController

	articles surfaceArticleLister
	events   surfaceEventLister
	pageSize int
	logger   *zap.Logger
}

// NewSurfaceRegistry constructs the registry.
func NewSurfaceRegistry(articles surfaceArticleLister, events surfaceEventLister, pageSize int, logger *zap.Logger) *SurfaceRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurfaceRegistry{
		controllers: make(map[string]*ListController),
		articles:    articles,
		events:      events,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// Controller returns the surface controller for a session and kind, creating
// it on first use with the kind's default filter.
func (r *SurfaceRegistry) Controller(sessionID string, kind models.ContentKind) (*ListController, error) {
	var fetch ContentFetcher
	var defaultFilter models.ContentStatus
	switch kind {
	case models.KindArticle:
		defaultFilter = models.StatusDraft
		fetch = func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
			articles, info, err := r.articles.ListArticles(ctx, sess, status, page, pageSize)
			if err != nil {
				return nil, gateway.PageInfo{}, err
			}
			items := make([]models.ContentItem, 0, len(articles))
			for _, a := range articles {
				items = append(items, a.AsContentItem())
			}
			return items, info, nil
		}
	case models.KindEvent:
		defaultFilter = models.StatusPending
		fetch = func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
			events, info, err := r.events.ListEvents(ctx, sess, status, page, pageSize)
			if err != nil {
				return nil, gateway.PageInfo{}, err
			}
			items := make([]models.ContentItem, 0, len(events))
			for _, e := range events {
				items = append(items, e.AsContentItem())
			}
			return items, info, nil
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown content kind")
	}

	key := sessionID + "|" + string(kind)

	r.mu.Lock()
	defer r.mu.Unlock()
	if ctrl, ok := r.controllers[key]; ok {
		return ctrl, nil
	}
	ctrl := NewListController(kind, defaultFilter, r.pageSize, fetch, r.logger)
	r.controllers[key] = ctrl
	return ctrl, nil
}

// Drop discards all surface state for a session, e.g. on logout.
func (r *SurfaceRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range []models.ContentKind{models.KindArticle, models.KindEvent} {
		delete(r.controllers, sessionID+"|"+string(kind))
	}
}
