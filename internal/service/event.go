package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// EventGrant proves that a user passed the existence and ownership checks for
// one event. Only AuthorizeModification hands out valid grants, and the
// mutating methods refuse anything else.
type EventGrant struct {
	event model.Event
	valid bool
}

// Event returns the event as it was when the grant was issued.
func (g EventGrant) Event() model.Event {
	return g.event
}

// EventService manages events and their ownership.
type EventService struct {
	events      repository.EventStore
	disciplines repository.DisciplineStore
	now         func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(events repository.EventStore, disciplines repository.DisciplineStore) *EventService {
	return &EventService{events: events, disciplines: disciplines, now: time.Now}
}

// IsOwner reports whether userID created e.
func IsOwner(e model.Event, userID string) bool {
	return userID != "" && e.OwnerID == userID
}

// ListByDiscipline returns the events of an existing discipline.
func (s *EventService) ListByDiscipline(ctx context.Context, disciplineID string) ([]model.Event, error) {
	if err := s.requireDiscipline(ctx, disciplineID); err != nil {
		return nil, err
	}
	return s.events.ListByDiscipline(ctx, disciplineID)
}

// Get returns an event filed under disciplineID.
func (s *EventService) Get(ctx context.Context, disciplineID, eventID string) (model.Event, error) {
	e, err := s.load(ctx, disciplineID, eventID)
	if err != nil {
		return model.Event{}, err
	}
	return *e, nil
}

// Create files a new event under an existing discipline, owned by user.
func (s *EventService) Create(ctx context.Context, user model.User, disciplineID string, req model.CreateEventRequest) (model.Event, error) {
	if err := s.requireDiscipline(ctx, disciplineID); err != nil {
		return model.Event{}, err
	}
	if err := model.Validate(req); err != nil {
		return model.Event{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	e := model.Event{
		ID:           uuid.NewString(),
		DisciplineID: disciplineID,
		OwnerID:      user.ID,
		Name:         req.Name,
		Description:  req.Description,
		Location:     req.Location,
		StartsAt:     req.StartsAt.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.EndsAt != nil {
		ends := req.EndsAt.UTC()
		e.EndsAt = &ends
	}

	if err := s.events.Create(ctx, &e); err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// AuthorizeModification checks, in order, that the event exists under
// disciplineID and that user owns it. The first failing check wins:
// ErrEventNotFound before ErrNotOwner.
func (s *EventService) AuthorizeModification(ctx context.Context, user model.User, disciplineID, eventID string) (EventGrant, error) {
	e, err := s.load(ctx, disciplineID, eventID)
	if err != nil {
		return EventGrant{}, err
	}

	if !IsOwner(*e, user.ID) {
		return EventGrant{}, ErrNotOwner
	}

	return EventGrant{event: *e, valid: true}, nil
}

// UpdateEvent applies req to the granted event and persists it.
func (s *EventService) UpdateEvent(ctx context.Context, grant EventGrant, req model.UpdateEventRequest) (model.Event, error) {
	if !grant.valid {
		return model.Event{}, ErrForbidden
	}
	if err := model.Validate(req); err != nil {
		return model.Event{}, err
	}

	e := req.Apply(grant.event)
	e.StartsAt = e.StartsAt.UTC()
	if e.EndsAt != nil {
		ends := e.EndsAt.UTC()
		e.EndsAt = &ends
		if ends.Before(e.StartsAt) {
			return model.Event{}, model.NewValidationError("endsAt", "endsAt must not be before startsAt")
		}
	}
	e.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)

	if err := s.events.Update(ctx, &e); err != nil {
		return model.Event{}, notFoundAs(err, ErrEventVanished)
	}
	return e, nil
}

// DeleteEvent removes the granted event and returns its last known state.
func (s *EventService) DeleteEvent(ctx context.Context, grant EventGrant) (model.Event, error) {
	if !grant.valid {
		return model.Event{}, ErrForbidden
	}

	if err := s.events.Delete(ctx, grant.event.ID); err != nil {
		return model.Event{}, notFoundAs(err, ErrEventVanished)
	}
	return grant.event, nil
}

func (s *EventService) requireDiscipline(ctx context.Context, id string) error {
	if _, err := s.disciplines.GetByID(ctx, id); err != nil {
		return notFoundAs(err, ErrDisciplineNotFound)
	}
	return nil
}

// load treats an event filed under another discipline as missing.
func (s *EventService) load(ctx context.Context, disciplineID, eventID string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.DisciplineID != disciplineID {
		return nil, ErrEventNotFound
	}
	return e, nil
}
