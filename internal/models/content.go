package models

import "time"

// ContentKind tags a workflow-bearing content item.
type ContentKind string

const (
	KindArticle ContentKind = "ARTICLE"
	KindEvent   ContentKind = "EVENT"
)

// ContentStatus is the canonical lifecycle state shared by articles and
// events. Values match the gateway's string-keyed status filters exactly;
// the numeric codes some resources use on the wire are mapped away at the
// gateway boundary.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "Draft"
	StatusPending   ContentStatus = "Pending"
	StatusPublished ContentStatus = "Published"
	StatusOngoing   ContentStatus = "Ongoing"
	StatusCancelled ContentStatus = "Cancelled"
	StatusRejected  ContentStatus = "Rejected"
	StatusCompleted ContentStatus = "Completed"
)

// Transition is a named, role-gated state change on a content item.
type Transition string

const (
	TransitionSubmit  Transition = "submit"
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionCancel  Transition = "cancel"
)

// OwnerScopeSystem marks system-wide articles authored by portal admins
// rather than a single university.
const OwnerScopeSystem = "master"

// ContentItem generalises Article and Event for the workflow surfaces.
type ContentItem struct {
	ID          string        `json:"id"`
	Kind        ContentKind   `json:"kind"`
	Title       string        `json:"title"`
	Content     string        `json:"content,omitempty"`
	Status      ContentStatus `json:"status"`
	OwnerScope  string        `json:"owner_scope,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
}

// Article is a counselling article as served by the gateway.
type Article struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	UniversityID string        `json:"university_id"`
	Status       ContentStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	PublishedAt  *time.Time    `json:"published_at,omitempty"`
}

// Event is an admissions event as served by the gateway.
type Event struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Content         string        `json:"content"`
	UniversityID    string        `json:"university_id"`
	Status          ContentStatus `json:"status"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         *time.Time    `json:"end_date,omitempty"`
	Capacity        int           `json:"capacity,omitempty"`
	RegisteredCount int           `json:"registered_count"`
	CreatedAt       time.Time     `json:"created_at"`
}

// AsContentItem projects an article onto the workflow surface shape.
func (a Article) AsContentItem() ContentItem {
	return ContentItem{
		ID:          a.ID,
		Kind:        KindArticle,
		Title:       a.Title,
		Content:     a.Content,
		Status:      a.Status,
		OwnerScope:  a.UniversityID,
		CreatedAt:   a.CreatedAt,
		PublishedAt: a.PublishedAt,
	}
}

// AsContentItem projects an event onto the workflow surface shape.
func (e Event) AsContentItem() ContentItem {
	start := e.StartDate
	return ContentItem{
		ID:         e.ID,
		Kind:       KindEvent,
		Title:      e.Name,
		Content:    e.Content,
		Status:     e.Status,
		OwnerScope: e.UniversityID,
		CreatedAt:  e.CreatedAt,
		StartDate:  &start,
		EndDate:    e.EndDate,
	}
}

// ArticleStatuses lists the status filters the gateway accepts for articles.
func ArticleStatuses() []ContentStatus {
	return []ContentStatus{StatusDraft, StatusPending, StatusPublished}
}

// EventStatuses lists the status filters the gateway accepts for events.
func EventStatuses() []ContentStatus {
	return []ContentStatus{StatusPending, StatusPublished, StatusCancelled, StatusOngoing, StatusRejected, StatusCompleted}
}

// ValidStatusFilter reports whether status is a legal list filter for kind.
func ValidStatusFilter(kind ContentKind, status ContentStatus) bool {
	var statuses []ContentStatus
	switch kind {
	case KindArticle:
		statuses = ArticleStatuses()
	case KindEvent:
		statuses = EventStatuses()
	default:
		return false
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// RegistrationOpen is the canonical rule deciding whether a student can still
// register for an event: the event is visible (Published or Ongoing), has not
// started, and has seats left when a capacity is set.
func (e Event) RegistrationOpen(now time.Time) bool {
	if e.Status != StatusPublished && e.Status != StatusOngoing {
		return false
	}
	if !now.Before(e.StartDate) {
		return false
	}
	if e.Capacity > 0 && e.RegisteredCount >= e.Capacity {
		return false
	}
	return true
}
