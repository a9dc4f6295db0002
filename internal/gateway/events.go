package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
)

type eventWire struct {
	ID              string     `json:"id" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Content         string     `json:"content"`
	UniversityID    string     `json:"universityId"`
	Status          int        `json:"status"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	Capacity        int        `json:"capacity"`
	RegisteredCount int        `json:"registeredCount"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type eventPageWire struct {
	PageInfo
	Items []eventWire `json:"items"`
}

func (c *Client) eventFromWire(w eventWire) (*models.Event, error) {
	if err := c.checkWire(w); err != nil {
		return nil, err
	}
	status, err := eventStatusFromCode(w.Status)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		ID:              w.ID,
		Name:            w.Name,
		Content:         w.Content,
		UniversityID:    w.UniversityID,
		Status:          status,
		StartDate:       w.StartDate,
		EndDate:         w.EndDate,
		Capacity:        w.Capacity,
		RegisteredCount: w.RegisteredCount,
		CreatedAt:       w.CreatedAt,
	}, nil
}

// ListEvents fetches one page of events in the given status. The filter path
// segment is string-keyed even though event payloads carry numeric codes.
func (c *Client) ListEvents(ctx context.Context, sess Session, status models.ContentStatus, page, pageSize int) ([]models.Event, PageInfo, error) {
	var wire eventPageWire
	if err := c.call(ctx, sess, http.MethodGet, "/events/"+string(status), pageQuery(page, pageSize), nil, &wire); err != nil {
		return nil, PageInfo{}, err
	}
	events := make([]models.Event, 0, len(wire.Items))
	for _, item := range wire.Items {
		event, err := c.eventFromWire(item)
		if err != nil {
			return nil, PageInfo{}, err
		}
		events = append(events, *event)
	}
	return events, wire.PageInfo, nil
}

// GetEvent fetches a single event by id.
func (c *Client) GetEvent(ctx context.Context, sess Session, id string) (*models.Event, error) {
	var wire eventWire
	if err := c.call(ctx, sess, http.MethodGet, "/events/by-id/"+id, nil, nil, &wire); err != nil {
		return nil, err
	}
	return c.eventFromWire(wire)
}

// CreateEventInput is the create payload forwarded to the gateway. Events
// start Pending, awaiting admin approval.
type CreateEventInput struct {
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Capacity  int        `json:"capacity,omitempty"`
}

// CreateEvent creates a pending event and returns the assigned id.
func (c *Client) CreateEvent(ctx context.Context, sess Session, in CreateEventInput) (string, error) {
	var created struct {
		ID string `json:"id" validate:"required"`
	}
	if err := c.call(ctx, sess, http.MethodPost, "/events", nil, in, &created); err != nil {
		return "", err
	}
	if err := c.checkWire(created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// ApproveEvent publishes a pending event.
func (c *Client) ApproveEvent(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/events/approve/"+id, nil, nil, nil)
}

// RejectEvent terminally rejects a pending event.
func (c *Client) RejectEvent(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/events/reject/"+id, nil, nil, nil)
}

// CancelEvent cancels a published event.
func (c *Client) CancelEvent(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/events/cancel/"+id, nil, nil, nil)
}

// RegisterEvent registers the current student for an event.
func (c *Client) RegisterEvent(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPost, "/events/register/"+id, nil, nil, nil)
}

// UnregisterEvent withdraws the current student's registration.
func (c *Client) UnregisterEvent(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodDelete, "/events/register/"+id, nil, nil, nil)
}
