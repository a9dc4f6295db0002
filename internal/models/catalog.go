package models

import "time"

// University is a participating institution managed from the admin surface.
type University struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// Major is a study programme offered by a university.
type Major struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	UniversityID string `json:"university_id"`
	IsDeleted    bool   `json:"is_deleted"`
}

// Subject is a single admission exam subject.
type Subject struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"is_deleted"`
}

// SubjectGroup is a named combination of exactly three subjects used for
// admission scoring (e.g. A00 = Math, Physics, Chemistry).
type SubjectGroup struct {
	ID         string   `json:"id"`
	Code       string   `json:"code"`
	SubjectIDs []string `json:"subject_ids"`
	IsDeleted  bool     `json:"is_deleted"`
}

// SubjectGroupDraft is the in-progress selection edited on the admin surface
// before a group is saved. Selection rules live in the subject group service.
type SubjectGroupDraft struct {
	ID         string   `json:"id,omitempty"`
	Code       string   `json:"code"`
	SubjectIDs []string `json:"subject_ids"`
}

// CatalogFilter captures paging for catalogue listings.
type CatalogFilter struct {
	Search         string
	IncludeDeleted bool
	Page           int
	PageSize       int
}
