package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func newSurfaceRegistryForTest() (*SurfaceRegistry, *articleGatewayStub, *eventGatewayStub) {
	articles := newArticleGatewayStub(
		&models.Article{ID: "a-1", Title: "Draft piece", Content: "c", UniversityID: "uni-1", Status: models.StatusDraft},
	)
	events := newEventGatewayStub(
		&models.Event{ID: "e-1", Name: "Open day", Status: models.StatusPending, StartDate: time.Now().Add(time.Hour)},
	)
	return NewSurfaceRegistry(articles, events, 10, zap.NewNop()), articles, events
}

func TestSurfaceRegistryDefaultFilters(t *testing.T) {
	reg, _, _ := newSurfaceRegistryForTest()

	articleCtrl, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)
	require.Equal(t, models.StatusDraft, articleCtrl.Snapshot().Filter)

	eventCtrl, err := reg.Controller("sess-1", models.KindEvent)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, eventCtrl.Snapshot().Filter)
}

func TestSurfaceRegistryReusesControllerPerSessionAndKind(t *testing.T) {
	reg, _, _ := newSurfaceRegistryForTest()

	first, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)
	second, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)
	require.Same(t, first, second)

	other, err := reg.Controller("sess-2", models.KindArticle)
	require.NoError(t, err)
	require.NotSame(t, first, other, "surface state is per session")
}

func TestSurfaceRegistryProjectsContentItems(t *testing.T) {
	reg, _, _ := newSurfaceRegistryForTest()

	ctrl, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)

	snap, err := ctrl.Reload(context.Background(), gateway.Session{})
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	require.Equal(t, models.KindArticle, snap.Items[0].Kind)
	require.Equal(t, "Draft piece", snap.Items[0].Title)
	require.Equal(t, "uni-1", snap.Items[0].OwnerScope)
}

func TestSurfaceRegistryUnknownKind(t *testing.T) {
	reg, _, _ := newSurfaceRegistryForTest()

	_, err := reg.Controller("sess-1", models.ContentKind("PODCAST"))
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSurfaceRegistryDrop(t *testing.T) {
	reg, _, _ := newSurfaceRegistryForTest()

	first, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)

	reg.Drop("sess-1")

	fresh, err := reg.Controller("sess-1", models.KindArticle)
	require.NoError(t, err)
	require.NotSame(t, first, fresh)
}
