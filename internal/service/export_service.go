package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered document ready to stream to the client.
type ExportResult struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

type exportRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type exportArticleLister interface {
	ListArticles(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Article, gateway.PageInfo, error)
}

type exportEventLister interface {
	ListEvents(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Event, gateway.PageInfo, error)
}

// exportPageSize bounds one export to a single large gateway page.
const exportPageSize = 500

// ExportService renders content listings as CSV or PDF documents.
type ExportService struct {
	articles exportArticleLister
	events   exportEventLister
	csv      exportRenderer
	pdf      exportRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs the service.
func NewExportService(articles exportArticleLister, events exportEventLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		articles: articles,
		events:   events,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ExportService) render(format ExportFormat, data export.Dataset, stem string) (*ExportResult, error) {
	var (
		renderer    exportRenderer
		contentType string
		ext         string
	)
	switch format {
	case FormatCSV:
		renderer, contentType, ext = s.csv, "text/csv", "csv"
	case FormatPDF:
		renderer, contentType, ext = s.pdf, "application/pdf", "pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	bytes, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	filename := fmt.Sprintf("%s_%s.%s", stem, s.now().Format("20060102_150405"), ext)
	s.logger.Info("export rendered",
		zap.String("filename", filename),
		zap.Int("rows", len(data.Rows)),
	)
	return &ExportResult{Bytes: bytes, Filename: filename, ContentType: contentType}, nil
}

// ExportArticles renders the article listing for one status filter.
func (s *ExportService) ExportArticles(ctx context.Context, sess gateway.Session, status models.ContentStatus, format ExportFormat) (*ExportResult, error) {
	if !models.ValidStatusFilter(models.KindArticle, status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown article status filter")
	}
	articles, _, err := s.articles.ListArticles(ctx, sess, status, 1, exportPageSize)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Articles - " + string(status),
		Headers: []string{"ID", "Title", "Owner", "Status", "Created", "Published"},
		Rows:    make([][]string, 0, len(articles)),
	}
	for _, a := range articles {
		published := ""
		if a.PublishedAt != nil {
			published = a.PublishedAt.Format("2006-01-02")
		}
		owner := a.UniversityID
		if owner == "" {
			owner = models.OwnerScopeSystem
		}
		data.Rows = append(data.Rows, []string{
			a.ID, a.Title, owner, string(a.Status), a.CreatedAt.Format("2006-01-02"), published,
		})
	}
	return s.render(format, data, "articles_"+string(status))
}

// ExportEvents renders the event listing for one status filter.
func (s *ExportService) ExportEvents(ctx context.Context, sess gateway.Session, status models.ContentStatus, format ExportFormat) (*ExportResult, error) {
	if !models.ValidStatusFilter(models.KindEvent, status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event status filter")
	}
	events, _, err := s.events.ListEvents(ctx, sess, status, 1, exportPageSize)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Events - " + string(status),
		Headers: []string{"ID", "Name", "Status", "Starts", "Ends", "Capacity", "Registered"},
		Rows:    make([][]string, 0, len(events)),
	}
	for _, e := range events {
		ends := ""
		if e.EndDate != nil {
			ends = e.EndDate.Format("2006-01-02 15:04")
		}
		capacity := "unlimited"
		if e.Capacity > 0 {
			capacity = strconv.Itoa(e.Capacity)
		}
		data.Rows = append(data.Rows, []string{
			e.ID, e.Name, string(e.Status), e.StartDate.Format("2006-01-02 15:04"), ends,
			capacity, strconv.Itoa(e.RegisteredCount),
		})
	}
	return s.render(format, data, "events_"+string(status))
}
