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

type subjectGroupGatewayStub struct {
	created []gateway.SaveSubjectGroupInput
	updated map[string]gateway.SaveSubjectGroupInput
	toggled []string
}

func newSubjectGroupGatewayStub() *subjectGroupGatewayStub {
	return &subjectGroupGatewayStub{updated: make(map[string]gateway.SaveSubjectGroupInput)}
}

func (s *subjectGroupGatewayStub) ListSubjects(ctx context.Context, sess gateway.Session) ([]models.Subject, error) {
	return []models.Subject{
		{ID: "sub-math", Code: "MATH", Name: "Mathematics"},
		{ID: "sub-phys", Code: "PHYS", Name: "Physics"},
		{ID: "sub-chem", Code: "CHEM", Name: "Chemistry"},
		{ID: "sub-lit", Code: "LIT", Name: "Literature"},
	}, nil
}

func (s *subjectGroupGatewayStub) ListSubjectGroups(ctx context.Context, sess gateway.Session, filter models.CatalogFilter) ([]models.SubjectGroup, gateway.PageInfo, error) {
	return []models.SubjectGroup{
		{ID: "sg-1", Code: "A00", SubjectIDs: []string{"sub-math", "sub-phys", "sub-chem"}},
	}, gateway.PageInfo{PageNumber: filter.Page, TotalPages: 1, TotalCount: 1}, nil
}

func (s *subjectGroupGatewayStub) CreateSubjectGroup(ctx context.Context, sess gateway.Session, in gateway.SaveSubjectGroupInput) (string, error) {
	s.created = append(s.created, in)
	return "sg-new", nil
}

func (s *subjectGroupGatewayStub) UpdateSubjectGroup(ctx context.Context, sess gateway.Session, id string, in gateway.SaveSubjectGroupInput) error {
	s.updated[id] = in
	return nil
}

func (s *subjectGroupGatewayStub) ToggleSubjectGroupStatus(ctx context.Context, sess gateway.Session, id string) error {
	s.toggled = append(s.toggled, id)
	return nil
}

func TestSubjectGroupToggleSubject(t *testing.T) {
	svc := NewSubjectGroupService(newSubjectGroupGatewayStub(), zap.NewNop())
	draft := models.SubjectGroupDraft{Code: "A00"}

	draft, err := svc.ToggleSubject(draft, "sub-math")
	require.NoError(t, err)
	draft, err = svc.ToggleSubject(draft, "sub-phys")
	require.NoError(t, err)
	draft, err = svc.ToggleSubject(draft, "sub-chem")
	require.NoError(t, err)
	require.Equal(t, []string{"sub-math", "sub-phys", "sub-chem"}, draft.SubjectIDs)

	// Toggling a selected subject removes it.
	draft, err = svc.ToggleSubject(draft, "sub-phys")
	require.NoError(t, err)
	require.Equal(t, []string{"sub-math", "sub-chem"}, draft.SubjectIDs)
}

func TestSubjectGroupToggleFourthSubjectRejected(t *testing.T) {
	svc := NewSubjectGroupService(newSubjectGroupGatewayStub(), zap.NewNop())
	draft := models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"sub-math", "sub-phys", "sub-chem"}}

	got, err := svc.ToggleSubject(draft, "sub-lit")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Equal(t, draft.SubjectIDs, got.SubjectIDs, "rejected toggle leaves the draft unchanged")
}

func TestSubjectGroupCanSave(t *testing.T) {
	svc := NewSubjectGroupService(newSubjectGroupGatewayStub(), zap.NewNop())

	require.True(t, svc.CanSave(models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "b", "c"}}))
	require.False(t, svc.CanSave(models.SubjectGroupDraft{Code: "", SubjectIDs: []string{"a", "b", "c"}}))
	require.False(t, svc.CanSave(models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "b"}}))
	require.False(t, svc.CanSave(models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "b", "c", "d"}}))
	require.False(t, svc.CanSave(models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "a", "b"}}), "duplicate subjects never save")
}

func TestSubjectGroupSaveDispatchesCreateOrUpdate(t *testing.T) {
	stub := newSubjectGroupGatewayStub()
	svc := NewSubjectGroupService(stub, zap.NewNop())

	group, err := svc.Save(context.Background(), gateway.Session{}, models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "b", "c"}})
	require.NoError(t, err)
	require.Equal(t, "sg-new", group.ID)
	require.Len(t, stub.created, 1)
	require.Empty(t, stub.updated)

	_, err = svc.Save(context.Background(), gateway.Session{}, models.SubjectGroupDraft{ID: "sg-1", Code: "A01", SubjectIDs: []string{"a", "b", "d"}})
	require.NoError(t, err)
	require.Len(t, stub.created, 1)
	require.Equal(t, "A01", stub.updated["sg-1"].Code)
}

func TestSubjectGroupSaveEnforcesExactlyThree(t *testing.T) {
	stub := newSubjectGroupGatewayStub()
	svc := NewSubjectGroupService(stub, zap.NewNop())

	_, err := svc.Save(context.Background(), gateway.Session{}, models.SubjectGroupDraft{Code: "A00", SubjectIDs: []string{"a", "b"}})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Empty(t, stub.created)
}

func TestSubjectGroupToggleStatus(t *testing.T) {
	stub := newSubjectGroupGatewayStub()
	svc := NewSubjectGroupService(stub, zap.NewNop())

	require.NoError(t, svc.ToggleStatus(context.Background(), gateway.Session{}, "sg-1"))
	require.Equal(t, []string{"sg-1"}, stub.toggled)

	err := svc.ToggleStatus(context.Background(), gateway.Session{}, " ")
	require.Error(t, err)
}
