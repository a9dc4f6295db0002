package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// subjectGroupSize is the fixed number of subjects in an admission group.
const subjectGroupSize = 3

type subjectGroupGateway interface {
	ListSubjects(ctx context.Context, sess gateway.Session) ([]models.Subject, error)
	ListSubjectGroups(ctx context.Context, sess gateway.Session, filter models.CatalogFilter) ([]models.SubjectGroup, gateway.PageInfo, error)
	CreateSubjectGroup(ctx context.Context, sess gateway.Session, in gateway.SaveSubjectGroupInput) (string, error)
	UpdateSubjectGroup(ctx context.Context, sess gateway.Session, id string, in gateway.SaveSubjectGroupInput) error
	ToggleSubjectGroupStatus(ctx context.Context, sess gateway.Session, id string) error
}

// SubjectGroupService manages admission subject groups. A group always holds
// exactly three distinct subjects; the draft editor enforces the upper bound
// on toggle and the exact count on save.
type SubjectGroupService struct {
	gw     subjectGroupGateway
	logger *zap.Logger
}

// NewSubjectGroupService constructs the service.
func NewSubjectGroupService(gw subjectGroupGateway, logger *zap.Logger) *SubjectGroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectGroupService{gw: gw, logger: logger}
}

// List returns one page of subject groups.
func (s *SubjectGroupService) List(ctx context.Context, sess gateway.Session, filter models.CatalogFilter) ([]models.SubjectGroup, *models.Pagination, error) {
	groups, info, err := s.gw.ListSubjectGroups(ctx, sess, filter)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: info.PageNumber, PageSize: filter.PageSize, TotalPages: info.TotalPages, TotalCount: info.TotalCount}
	return groups, pagination, nil
}

// Subjects returns the full subject catalogue for the group editor.
func (s *SubjectGroupService) Subjects(ctx context.Context, sess gateway.Session) ([]models.Subject, error) {
	return s.gw.ListSubjects(ctx, sess)
}

// ToggleSubject adds or removes one subject from a draft selection. Removal
// always succeeds; adding a fourth subject is rejected.
func (s *SubjectGroupService) ToggleSubject(draft models.SubjectGroupDraft, subjectID string) (models.SubjectGroupDraft, error) {
	if strings.TrimSpace(subjectID) == "" {
		return draft, appErrors.Clone(appErrors.ErrValidation, "subject id is required")
	}
	for i, id := range draft.SubjectIDs {
		if id == subjectID {
			draft.SubjectIDs = append(draft.SubjectIDs[:i:i], draft.SubjectIDs[i+1:]...)
			return draft, nil
		}
	}
	if len(draft.SubjectIDs) >= subjectGroupSize {
		return draft, appErrors.Clone(appErrors.ErrValidation, "a subject group holds exactly three subjects")
	}
	draft.SubjectIDs = append(draft.SubjectIDs, subjectID)
	return draft, nil
}

// CanSave reports whether a draft satisfies the group rules: a non-empty code
// and exactly three distinct subjects.
func (s *SubjectGroupService) CanSave(draft models.SubjectGroupDraft) bool {
	if strings.TrimSpace(draft.Code) == "" {
		return false
	}
	if len(draft.SubjectIDs) != subjectGroupSize {
		return false
	}
	seen := make(map[string]struct{}, subjectGroupSize)
	for _, id := range draft.SubjectIDs {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Save persists a draft, dispatching to create or update on the presence of
// an id. The exact-three rule is re-checked here so direct API callers cannot
// bypass the editor.
func (s *SubjectGroupService) Save(ctx context.Context, sess gateway.Session, draft models.SubjectGroupDraft) (*models.SubjectGroup, error) {
	if !s.CanSave(draft) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a subject group needs a code and exactly three distinct subjects")
	}
	in := gateway.SaveSubjectGroupInput{Code: draft.Code, SubjectIDs: draft.SubjectIDs}
	id := draft.ID
	if id == "" {
		created, err := s.gw.CreateSubjectGroup(ctx, sess, in)
		if err != nil {
			return nil, err
		}
		id = created
		s.logger.Info("subject group created", zap.String("group_id", id), zap.String("code", draft.Code))
	} else {
		if err := s.gw.UpdateSubjectGroup(ctx, sess, id, in); err != nil {
			return nil, err
		}
		s.logger.Info("subject group updated", zap.String("group_id", id), zap.String("code", draft.Code))
	}
	return &models.SubjectGroup{ID: id, Code: draft.Code, SubjectIDs: draft.SubjectIDs}, nil
}

// ToggleStatus flips a subject group's soft-delete flag.
func (s *SubjectGroupService) ToggleStatus(ctx context.Context, sess gateway.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "subject group id is required")
	}
	return s.gw.ToggleSubjectGroupStatus(ctx, sess, id)
}
