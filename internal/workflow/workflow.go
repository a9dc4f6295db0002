// Package workflow declares the content lifecycle state machines and the
// role gating applied to them. The gateway remains the authority on every
// transition; this table only decides which controls a surface may offer.
package workflow

import (
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
)

type edge struct {
	from  models.ContentStatus
	to    models.ContentStatus
	roles []models.UserRole
}

// Machine holds the legal transition tables keyed by content kind.
type Machine struct {
	edges    map[models.ContentKind]map[models.Transition]edge
	order    map[models.ContentKind][]models.Transition
	terminal map[models.ContentKind]map[models.ContentStatus]struct{}
}

// NewMachine builds the fixed article and event state machines.
//
// Articles: Draft -submit(staff)-> Pending -approve(admin)-> Published,
// Pending -reject(admin)-> Draft. Rejection returns the article to Draft so
// the owner keeps the edit-and-resubmit loop; articles have no Rejected
// terminal.
//
// Events: Pending -approve(admin)-> Published, Pending -reject(admin)->
// Rejected, Published -cancel(staff|admin)-> Cancelled. Ongoing and
// Completed are reached by the gateway on its own clock, never from here.
func NewMachine() *Machine {
	return &Machine{
		edges: map[models.ContentKind]map[models.Transition]edge{
			models.KindArticle: {
				models.TransitionSubmit: {
					from:  models.StatusDraft,
					to:    models.StatusPending,
					roles: []models.UserRole{models.RoleStaff},
				},
				models.TransitionApprove: {
					from:  models.StatusPending,
					to:    models.StatusPublished,
					roles: []models.UserRole{models.RoleAdmin},
				},
				models.TransitionReject: {
					from:  models.StatusPending,
					to:    models.StatusDraft,
					roles: []models.UserRole{models.RoleAdmin},
				},
			},
			models.KindEvent: {
				models.TransitionApprove: {
					from:  models.StatusPending,
					to:    models.StatusPublished,
					roles: []models.UserRole{models.RoleAdmin},
				},
				models.TransitionReject: {
					from:  models.StatusPending,
					to:    models.StatusRejected,
					roles: []models.UserRole{models.RoleAdmin},
				},
				models.TransitionCancel: {
					from:  models.StatusPublished,
					to:    models.StatusCancelled,
					roles: []models.UserRole{models.RoleStaff, models.RoleAdmin},
				},
			},
		},
		order: map[models.ContentKind][]models.Transition{
			models.KindArticle: {models.TransitionSubmit, models.TransitionApprove, models.TransitionReject},
			models.KindEvent:   {models.TransitionApprove, models.TransitionReject, models.TransitionCancel},
		},
		terminal: map[models.ContentKind]map[models.ContentStatus]struct{}{
			models.KindArticle: {
				models.StatusPublished: {},
			},
			models.KindEvent: {
				models.StatusRejected:  {},
				models.StatusCancelled: {},
				models.StatusCompleted: {},
			},
		},
	}
}

// AllowedTransitions returns the transitions a user with the given role may
// trigger on an item of the given kind and status. Terminal statuses always
// yield an empty set.
func (m *Machine) AllowedTransitions(kind models.ContentKind, status models.ContentStatus, role models.UserRole) []models.Transition {
	allowed := []models.Transition{}
	if m.IsTerminal(kind, status) {
		return allowed
	}
	for _, name := range m.order[kind] {
		e := m.edges[kind][name]
		if e.from != status {
			continue
		}
		for _, r := range e.roles {
			if r == role {
				allowed = append(allowed, name)
				break
			}
		}
	}
	return allowed
}

// CanTransition reports whether the named transition is legal for the exact
// current status and actor role. Source states are matched exactly, states
// are never skipped.
func (m *Machine) CanTransition(kind models.ContentKind, status models.ContentStatus, role models.UserRole, t models.Transition) bool {
	for _, allowed := range m.AllowedTransitions(kind, status, role) {
		if allowed == t {
			return true
		}
	}
	return false
}

// Target returns the destination status of a transition for the kind.
func (m *Machine) Target(kind models.ContentKind, t models.Transition) (models.ContentStatus, bool) {
	e, ok := m.edges[kind][t]
	if !ok {
		return "", false
	}
	return e.to, true
}

// IsTerminal reports whether no user-initiated transition ever leaves status.
func (m *Machine) IsTerminal(kind models.ContentKind, status models.ContentStatus) bool {
	_, ok := m.terminal[kind][status]
	return ok
}
