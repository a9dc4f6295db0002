package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// ListState is the rendering state of a list surface.
type ListState string

const (
	ListStateIdle    ListState = "idle"
	ListStateLoading ListState = "loading"
	ListStateError   ListState = "error"
)

// ContentFetcher loads one page of content items for a status filter.
type ContentFetcher func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error)

// ListSnapshot is a point-in-time copy of a surface's view state.
type ListSnapshot struct {
	Kind       models.ContentKind   `json:"kind"`
	Filter     models.ContentStatus `json:"filter"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
	TotalCount int                  `json:"total_count"`
	State      ListState            `json:"state"`
	Empty      bool                 `json:"empty"`
	Items      []models.ContentItem `json:"items"`
	Error      *appErrors.Error     `json:"error,omitempty"`
}

// ListController owns the current page of items for one workflow surface.
// It is the only code path that writes items/totalPages. Reloads carry a
// monotonic sequence number so that when requests race, the most recently
// issued filter+page combination wins and stale completions are discarded.
type ListController struct {
	mu sync.Mutex

	kind     models.ContentKind
	fetch    ContentFetcher
	logger   *zap.Logger
	pageSize int

	filter     models.ContentStatus
	page       int
	totalPages int
	totalCount int
	items      []models.ContentItem
	state      ListState
	lastErr    *appErrors.Error

	seq uint64
}

// NewListController constructs a controller for one surface.
func NewListController(kind models.ContentKind, filter models.ContentStatus, pageSize int, fetch ContentFetcher, logger *zap.Logger) *ListController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ListController{
		kind:     kind,
		fetch:    fetch,
		logger:   logger,
		pageSize: pageSize,
		filter:   filter,
		page:     1,
		state:    ListStateIdle,
		items:    []models.ContentItem{},
	}
}

// SetFilter switches the status filter, resets to page 1 and reloads.
func (l *ListController) SetFilter(ctx context.Context, sess gateway.Session, filter models.ContentStatus) (ListSnapshot, error) {
	if !models.ValidStatusFilter(l.kind, filter) {
		return l.Snapshot(), appErrors.Clone(appErrors.ErrValidation, "unknown status filter for this surface")
	}
	l.mu.Lock()
	l.filter = filter
	l.page = 1
	l.mu.Unlock()
	return l.Reload(ctx, sess)
}

// SetPage moves to page n, clamped into [1, totalPages], and reloads.
// Out-of-range requests are clamped, never errored.
func (l *ListController) SetPage(ctx context.Context, sess gateway.Session, n int) (ListSnapshot, error) {
	l.mu.Lock()
	if n < 1 {
		n = 1
	}
	if l.totalPages > 0 && n > l.totalPages {
		n = l.totalPages
	}
	l.page = n
	l.mu.Unlock()
	return l.Reload(ctx, sess)
}

// Reload re-issues the current filter+page request. A failed reload keeps the
// previously rendered items (stale but present) and flags the error state; a
// successful reload is the only mutation point for items/totalPages.
func (l *ListController) Reload(ctx context.Context, sess gateway.Session) (ListSnapshot, error) {
	l.mu.Lock()
	l.seq++
	mySeq := l.seq
	filter := l.filter
	page := l.page
	pageSize := l.pageSize
	l.state = ListStateLoading
	l.mu.Unlock()

	items, info, err := l.fetch(ctx, sess, filter, page, pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()

	if mySeq != l.seq {
		// A newer reload was issued while this one was in flight; whatever it
		// returned is stale and must not overwrite fresher data.
		l.logger.Debug("discarding stale reload",
			zap.String("kind", string(l.kind)),
			zap.Uint64("seq", mySeq),
			zap.Uint64("latest", l.seq),
		)
		return l.snapshotLocked(), nil
	}

	if err != nil {
		l.state = ListStateError
		l.lastErr = appErrors.FromError(err)
		return l.snapshotLocked(), err
	}

	l.items = items
	l.totalPages = info.TotalPages
	l.totalCount = info.TotalCount
	if info.PageNumber > 0 {
		l.page = info.PageNumber
	}
	l.state = ListStateIdle
	l.lastErr = nil
	return l.snapshotLocked(), nil
}

// Snapshot returns the current view state without touching the gateway.
func (l *ListController) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *ListController) snapshotLocked() ListSnapshot {
	items := make([]models.ContentItem, len(l.items))
	copy(items, l.items)
	return ListSnapshot{
		Kind:       l.kind,
		Filter:     l.filter,
		Page:       l.page,
		PageSize:   l.pageSize,
		TotalPages: l.totalPages,
		TotalCount: l.totalCount,
		State:      l.state,
		Empty:      l.state == ListStateIdle && len(items) == 0,
		Items:      items,
		Error:      l.lastErr,
	}
}
