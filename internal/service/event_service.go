package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/internal/workflow"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type eventGateway interface {
	ListEvents(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Event, gateway.PageInfo, error)
	GetEvent(ctx context.Context, sess gateway.Session, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, sess gateway.Session, in gateway.CreateEventInput) (string, error)
	RegisterEvent(ctx context.Context, sess gateway.Session, id string) error
	UnregisterEvent(ctx context.Context, sess gateway.Session, id string) error
}

// EventService drives the admission event surfaces, including student
// registration.
type EventService struct {
	gw        eventGateway
	machine   *workflow.Machine
	executor  *TransitionExecutor
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
	now       func() time.Time
}

// NewEventService constructs the service.
func NewEventService(gw eventGateway, machine *workflow.Machine, executor *TransitionExecutor, validate *validator.Validate, logger *zap.Logger, pageSize int) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &EventService{gw: gw, machine: machine, executor: executor, validator: validate, logger: logger, pageSize: pageSize, now: time.Now}
}

// CreateEventRequest describes the create payload.
type CreateEventRequest struct {
	Name      string     `json:"name" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	StartDate time.Time  `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Capacity  int        `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

// List returns one page of events in the given status.
func (s *EventService) List(ctx context.Context, sess gateway.Session, status models.ContentStatus, page, pageSize int) ([]models.Event, *models.Pagination, error) {
	if !models.ValidStatusFilter(models.KindEvent, status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown event status filter")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	events, info, err := s.gw.ListEvents(ctx, sess, status, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: info.PageNumber, PageSize: pageSize, TotalPages: info.TotalPages, TotalCount: info.TotalCount}
	return events, pagination, nil
}

// Get returns an event by id.
func (s *EventService) Get(ctx context.Context, sess gateway.Session, id string) (*models.Event, error) {
	return s.gw.GetEvent(ctx, sess, id)
}

// Create validates the payload and creates a pending event.
func (s *EventService) Create(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, req CreateEventRequest) (*models.Event, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name, content and start date are required")
	}
	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must be after start date")
	}
	id, err := s.gw.CreateEvent(ctx, sess, gateway.CreateEventInput{
		Name:      req.Name,
		Content:   req.Content,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Capacity:  req.Capacity,
	})
	if err != nil {
		return nil, err
	}
	return s.gw.GetEvent(ctx, sess, id)
}

// Transition applies one workflow transition to an event, re-fetching the
// item on success.
func (s *EventService) Transition(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, id string, t models.Transition) (*models.Event, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	event, err := s.gw.GetEvent(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !s.machine.CanTransition(models.KindEvent, event.Status, actor.Role, t) {
		return nil, appErrors.Clone(appErrors.ErrIllegalTransition, "transition "+string(t)+" not allowed from status "+string(event.Status))
	}
	if err := s.executor.Execute(ctx, sess, models.KindEvent, id, t); err != nil {
		return nil, err
	}
	return s.gw.GetEvent(ctx, sess, id)
}

// AllowedTransitions lists the controls to render for an event.
func (s *EventService) AllowedTransitions(actor *models.JWTClaims, event *models.Event) []models.Transition {
	if actor == nil || event == nil {
		return []models.Transition{}
	}
	return s.machine.AllowedTransitions(models.KindEvent, event.Status, actor.Role)
}

// Register enrols a student in an event. Registration is only open while the
// event is published or ongoing, before its start date, with seats left.
func (s *EventService) Register(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, id string) (*models.Event, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can register for events")
	}
	event, err := s.gw.GetEvent(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !event.RegistrationOpen(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration is closed for this event")
	}
	if err := s.gw.RegisterEvent(ctx, sess, id); err != nil {
		return nil, err
	}
	s.logger.Info("event registration", zap.String("event_id", id), zap.String("user_id", actor.UserID))
	return s.gw.GetEvent(ctx, sess, id)
}

// Unregister withdraws a student's registration.
func (s *EventService) Unregister(ctx context.Context, sess gateway.Session, actor *models.JWTClaims, id string) (*models.Event, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can withdraw registrations")
	}
	if err := s.gw.UnregisterEvent(ctx, sess, id); err != nil {
		return nil, err
	}
	s.logger.Info("event registration withdrawn", zap.String("event_id", id), zap.String("user_id", actor.UserID))
	return s.gw.GetEvent(ctx, sess, id)
}
