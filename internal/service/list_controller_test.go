package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func itemsNamed(names ...string) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.ContentItem{ID: name, Kind: models.KindArticle, Title: name, Status: models.StatusDraft})
	}
	return items
}

func TestListControllerReloadSuccess(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		calls++
		require.Equal(t, models.StatusDraft, status)
		require.Equal(t, 1, page)
		return itemsNamed("a1", "a2"), gateway.PageInfo{PageNumber: 1, TotalPages: 3, TotalCount: 25}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	snap, err := ctrl.Reload(context.Background(), gateway.Session{Token: "tok"})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, ListStateIdle, snap.State)
	require.Len(t, snap.Items, 2)
	require.Equal(t, 3, snap.TotalPages)
	require.Equal(t, 25, snap.TotalCount)
	require.False(t, snap.Empty)
}

func TestListControllerEmptyIsNotError(t *testing.T) {
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		return []models.ContentItem{}, gateway.PageInfo{PageNumber: 1, TotalPages: 0, TotalCount: 0}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	snap, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)
	require.Equal(t, ListStateIdle, snap.State)
	require.True(t, snap.Empty)
	require.Nil(t, snap.Error)
}

func TestListControllerFailedReloadKeepsStaleItems(t *testing.T) {
	fail := false
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		if fail {
			return nil, gateway.PageInfo{}, appErrors.ErrGatewayNetwork
		}
		return itemsNamed("a1"), gateway.PageInfo{PageNumber: 1, TotalPages: 1, TotalCount: 1}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	_, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)

	fail = true
	snap, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.Error(t, err)
	require.Equal(t, ListStateError, snap.State)
	require.Len(t, snap.Items, 1, "stale items stay rendered on failure")
	require.False(t, snap.Empty, "error state is never reported as empty")
	require.NotNil(t, snap.Error)
	require.Equal(t, appErrors.ErrGatewayNetwork.Code, snap.Error.Code)

	fail = false
	snap, err = ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)
	require.Equal(t, ListStateIdle, snap.State)
	require.Nil(t, snap.Error)
}

func TestListControllerStaleCompletionDiscarded(t *testing.T) {
	ctrl := (*ListController)(nil)
	depth := 0
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		depth++
		if depth == 1 {
			// A newer reload finishes while this one is still in flight.
			_, err := ctrl.Reload(ctx, sess)
			require.NoError(t, err)
			return itemsNamed("stale"), gateway.PageInfo{PageNumber: 9, TotalPages: 9, TotalCount: 90}, nil
		}
		return itemsNamed("fresh-1", "fresh-2"), gateway.PageInfo{PageNumber: 1, TotalPages: 1, TotalCount: 2}, nil
	}
	ctrl = NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	snap, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)
	require.Equal(t, []string{"fresh-1", "fresh-2"}, []string{snap.Items[0].ID, snap.Items[1].ID})
	require.Equal(t, 1, snap.TotalPages, "stale completion must not overwrite fresher data")
	require.Equal(t, 1, snap.Page)
}

func TestListControllerSetFilterRejectsUnknownStatus(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		calls++
		return itemsNamed(), gateway.PageInfo{}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	_, err := ctrl.SetFilter(context.Background(), gateway.Session{}, models.StatusOngoing)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Zero(t, calls, "invalid filter must not hit the gateway")
}

func TestListControllerSetFilterResetsToFirstPage(t *testing.T) {
	var gotPage int
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		gotPage = page
		return itemsNamed("x"), gateway.PageInfo{PageNumber: page, TotalPages: 5, TotalCount: 50}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	_, err := ctrl.SetPage(context.Background(), gateway.Session{}, 4)
	require.NoError(t, err)
	require.Equal(t, 4, gotPage)

	_, err = ctrl.SetFilter(context.Background(), gateway.Session{}, models.StatusPending)
	require.NoError(t, err)
	require.Equal(t, 1, gotPage)
}

func TestListControllerSetPageClamps(t *testing.T) {
	var gotPage int
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		gotPage = page
		return itemsNamed("x"), gateway.PageInfo{PageNumber: page, TotalPages: 3, TotalCount: 30}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	_, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)

	_, err = ctrl.SetPage(context.Background(), gateway.Session{}, 99)
	require.NoError(t, err)
	require.Equal(t, 3, gotPage)

	_, err = ctrl.SetPage(context.Background(), gateway.Session{}, -2)
	require.NoError(t, err)
	require.Equal(t, 1, gotPage)
}

func TestListControllerSnapshotCopiesItems(t *testing.T) {
	fetch := func(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.ContentItem, gateway.PageInfo, error) {
		return itemsNamed("a1"), gateway.PageInfo{PageNumber: 1, TotalPages: 1, TotalCount: 1}, nil
	}
	ctrl := NewListController(models.KindArticle, models.StatusDraft, 10, fetch, zap.NewNop())

	_, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)

	snap := ctrl.Snapshot()
	snap.Items[0].Title = "mutated"
	require.Equal(t, "a1", ctrl.Snapshot().Items[0].Title)
}
