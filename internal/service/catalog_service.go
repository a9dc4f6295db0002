package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type catalogGateway interface {
	ListUniversities(ctx context.Context, sess gateway.Session, filter models.CatalogFilter) ([]models.University, gateway.PageInfo, error)
	ToggleUniversityStatus(ctx context.Context, sess gateway.Session, id string) error
	ListMajors(ctx context.Context, sess gateway.Session, universityID string, filter models.CatalogFilter) ([]models.Major, gateway.PageInfo, error)
	ToggleMajorStatus(ctx context.Context, sess gateway.Session, id string) error
}

// CatalogService exposes the university and major reference catalogues.
type CatalogService struct {
	gw       catalogGateway
	logger   *zap.Logger
	pageSize int
}

// NewCatalogService constructs the service.
func NewCatalogService(gw catalogGateway, logger *zap.Logger, pageSize int) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CatalogService{gw: gw, logger: logger, pageSize: pageSize}
}

func (s *CatalogService) normalise(filter models.CatalogFilter) models.CatalogFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.pageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return filter
}

// ListUniversities returns one page of universities.
func (s *CatalogService) ListUniversities(ctx context.Context, sess gateway.Session, filter models.CatalogFilter) ([]models.University, *models.Pagination, error) {
	filter = s.normalise(filter)
	universities, info, err := s.gw.ListUniversities(ctx, sess, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: info.PageNumber, PageSize: filter.PageSize, TotalPages: info.TotalPages, TotalCount: info.TotalCount}
	return universities, pagination, nil
}

// ToggleUniversityStatus flips a university's soft-delete flag.
func (s *CatalogService) ToggleUniversityStatus(ctx context.Context, sess gateway.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "university id is required")
	}
	if err := s.gw.ToggleUniversityStatus(ctx, sess, id); err != nil {
		return err
	}
	s.logger.Info("university status toggled", zap.String("university_id", id))
	return nil
}

// ListMajors returns one page of majors for a university.
func (s *CatalogService) ListMajors(ctx context.Context, sess gateway.Session, universityID string, filter models.CatalogFilter) ([]models.Major, *models.Pagination, error) {
	if strings.TrimSpace(universityID) == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "university id is required")
	}
	filter = s.normalise(filter)
	majors, info, err := s.gw.ListMajors(ctx, sess, universityID, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: info.PageNumber, PageSize: filter.PageSize, TotalPages: info.TotalPages, TotalCount: info.TotalCount}
	return majors, pagination, nil
}

// ToggleMajorStatus flips a major's soft-delete flag.
func (s *CatalogService) ToggleMajorStatus(ctx context.Context, sess gateway.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "major id is required")
	}
	if err := s.gw.ToggleMajorStatus(ctx, sess, id); err != nil {
		return err
	}
	s.logger.Info("major status toggled", zap.String("major_id", id))
	return nil
}
