package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
)

type universityWire struct {
	ID        string    `json:"id" validate:"required"`
	Code      string    `json:"code" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	City      string    `json:"city"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
}

type universityPageWire struct {
	PageInfo
	Items []universityWire `json:"items"`
}

// ListUniversities fetches one page of universities.
func (c *Client) ListUniversities(ctx context.Context, sess Session, filter models.CatalogFilter) ([]models.University, PageInfo, error) {
	query := pageQuery(filter.Page, filter.PageSize)
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.IncludeDeleted {
		query.Set("includeDeleted", "true")
	}
	var wire universityPageWire
	if err := c.call(ctx, sess, http.MethodGet, "/universities", query, nil, &wire); err != nil {
		return nil, PageInfo{}, err
	}
	universities := make([]models.University, 0, len(wire.Items))
	for _, item := range wire.Items {
		if err := c.checkWire(item); err != nil {
			return nil, PageInfo{}, err
		}
		universities = append(universities, models.University{
			ID:        item.ID,
			Code:      item.Code,
			Name:      item.Name,
			City:      item.City,
			IsDeleted: item.IsDeleted,
			CreatedAt: item.CreatedAt,
		})
	}
	return universities, wire.PageInfo, nil
}

// ToggleUniversityStatus flips a university's soft-delete flag. Catalogue
// entities are never hard deleted from the portal.
func (c *Client) ToggleUniversityStatus(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/universities/toggle/"+id, nil, nil, nil)
}

type majorWire struct {
	ID           string `json:"id" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	UniversityID string `json:"universityId"`
	Status       int    `json:"status"`
}

type majorPageWire struct {
	PageInfo
	Items []majorWire `json:"items"`
}

// ListMajors fetches one page of majors for a university. Majors are
// numeric-coded upstream: 0 active, 1 soft-deleted.
func (c *Client) ListMajors(ctx context.Context, sess Session, universityID string, filter models.CatalogFilter) ([]models.Major, PageInfo, error) {
	var wire majorPageWire
	if err := c.call(ctx, sess, http.MethodGet, "/majors/"+universityID, pageQuery(filter.Page, filter.PageSize), nil, &wire); err != nil {
		return nil, PageInfo{}, err
	}
	majors := make([]models.Major, 0, len(wire.Items))
	for _, item := range wire.Items {
		if err := c.checkWire(item); err != nil {
			return nil, PageInfo{}, err
		}
		majors = append(majors, models.Major{
			ID:           item.ID,
			Code:         item.Code,
			Name:         item.Name,
			UniversityID: item.UniversityID,
			IsDeleted:    item.Status == 1,
		})
	}
	return majors, wire.PageInfo, nil
}

// ToggleMajorStatus flips a major's soft-delete flag.
func (c *Client) ToggleMajorStatus(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/majors/toggle/"+id, nil, nil, nil)
}

type subjectWire struct {
	ID        string `json:"id" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsDeleted bool   `json:"isDeleted"`
}

// ListSubjects fetches all exam subjects. The subject catalogue is small and
// unpaginated upstream.
func (c *Client) ListSubjects(ctx context.Context, sess Session) ([]models.Subject, error) {
	var wire []subjectWire
	if err := c.call(ctx, sess, http.MethodGet, "/subjects", nil, nil, &wire); err != nil {
		return nil, err
	}
	subjects := make([]models.Subject, 0, len(wire))
	for _, item := range wire {
		if err := c.checkWire(item); err != nil {
			return nil, err
		}
		subjects = append(subjects, models.Subject{
			ID:        item.ID,
			Code:      item.Code,
			Name:      item.Name,
			IsDeleted: item.IsDeleted,
		})
	}
	return subjects, nil
}

type subjectGroupWire struct {
	ID         string   `json:"id" validate:"required"`
	Code       string   `json:"code" validate:"required"`
	SubjectIDs []string `json:"subjectIds" validate:"required,len=3"`
	IsDeleted  bool     `json:"isDeleted"`
}

type subjectGroupPageWire struct {
	PageInfo
	Items []subjectGroupWire `json:"items"`
}

// ListSubjectGroups fetches one page of subject groups.
func (c *Client) ListSubjectGroups(ctx context.Context, sess Session, filter models.CatalogFilter) ([]models.SubjectGroup, PageInfo, error) {
	var wire subjectGroupPageWire
	if err := c.call(ctx, sess, http.MethodGet, "/subject-groups", pageQuery(filter.Page, filter.PageSize), nil, &wire); err != nil {
		return nil, PageInfo{}, err
	}
	groups := make([]models.SubjectGroup, 0, len(wire.Items))
	for _, item := range wire.Items {
		if err := c.checkWire(item); err != nil {
			return nil, PageInfo{}, err
		}
		groups = append(groups, models.SubjectGroup{
			ID:         item.ID,
			Code:       item.Code,
			SubjectIDs: item.SubjectIDs,
			IsDeleted:  item.IsDeleted,
		})
	}
	return groups, wire.PageInfo, nil
}

// SaveSubjectGroupInput is the create/update payload for a subject group.
type SaveSubjectGroupInput struct {
	Code       string   `json:"code"`
	SubjectIDs []string `json:"subjectIds"`
}

// CreateSubjectGroup creates a subject group and returns the assigned id.
func (c *Client) CreateSubjectGroup(ctx context.Context, sess Session, in SaveSubjectGroupInput) (string, error) {
	var created struct {
		ID string `json:"id" validate:"required"`
	}
	if err := c.call(ctx, sess, http.MethodPost, "/subject-groups", nil, in, &created); err != nil {
		return "", err
	}
	if err := c.checkWire(created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateSubjectGroup replaces a subject group's code and subject selection.
func (c *Client) UpdateSubjectGroup(ctx context.Context, sess Session, id string, in SaveSubjectGroupInput) error {
	return c.call(ctx, sess, http.MethodPut, "/subject-groups/"+id, nil, in, nil)
}

// ToggleSubjectGroupStatus flips a subject group's soft-delete flag.
func (c *Client) ToggleSubjectGroupStatus(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/subject-groups/toggle/"+id, nil, nil, nil)
}
