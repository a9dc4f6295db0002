package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	published := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	articles := newArticleGatewayStub(
		&models.Article{ID: "a-1", Title: "Admissions 2026", Content: "c", UniversityID: "uni-1", Status: models.StatusPublished, CreatedAt: published, PublishedAt: &published},
	)
	events := newEventGatewayStub(
		&models.Event{ID: "e-1", Name: "Open day", Status: models.StatusPublished, StartDate: published.Add(240 * time.Hour), Capacity: 100, RegisteredCount: 42},
	)
	return NewExportService(articles, events, zap.NewNop())
}

func TestExportServiceArticlesCSV(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.ExportArticles(context.Background(), gateway.Session{}, models.StatusPublished, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Bytes)
	require.Contains(t, body, "Admissions 2026")
	require.Contains(t, body, "uni-1")
	require.Contains(t, body, "Published")
}

func TestExportServiceEventsPDF(t *testing.T) {
	svc := newExportServiceForTest(t)

	result, err := svc.ExportEvents(context.Background(), gateway.Session{}, models.StatusPublished, FormatPDF)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	require.NotEmpty(t, result.Bytes)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.ExportArticles(context.Background(), gateway.Session{}, models.StatusPublished, ExportFormat("xlsx"))
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceValidatesStatusFilter(t *testing.T) {
	svc := newExportServiceForTest(t)

	_, err := svc.ExportEvents(context.Background(), gateway.Session{}, models.StatusDraft, FormatCSV)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
