package models

// UserRole represents the available roles on the portal.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStaff   UserRole = "STAFF"
	RoleStudent UserRole = "STUDENT"
)

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	FullName     string   `json:"full_name"`
	Role         UserRole `json:"role"`
	UniversityID string   `json:"university_id,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}
