package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository/memory"
)

type eventFixture struct {
	store  *memory.Store
	svc    *EventService
	owner  model.User
	other  model.User
	disc   model.Discipline
	event  model.Event
	starts time.Time
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	f := &eventFixture{
		store:  store,
		svc:    NewEventService(store.Events(), store.Disciplines()),
		owner:  model.User{ID: "user-a", Role: model.RoleUser},
		other:  model.User{ID: "user-b", Role: model.RoleUser},
		starts: time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
	}

	disc, err := NewDisciplineService(store.Disciplines()).Create(ctx, model.DisciplineRequest{Name: "Athletics"})
	require.NoError(t, err)
	f.disc = disc

	ev, err := f.svc.Create(ctx, f.owner, disc.ID, model.CreateEventRequest{Name: "100m final", StartsAt: f.starts})
	require.NoError(t, err)
	f.event = ev

	return f
}

func TestCreateEvent_OwnerIsCreator(t *testing.T) {
	f := newEventFixture(t)

	assert.Equal(t, f.owner.ID, f.event.OwnerID)
	assert.Equal(t, f.disc.ID, f.event.DisciplineID)
	assert.True(t, IsOwner(f.event, f.owner.ID))
	assert.False(t, IsOwner(f.event, f.other.ID))
	assert.False(t, IsOwner(f.event, ""))
}

func TestCreateEvent_UnknownDiscipline(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner, "nope", model.CreateEventRequest{Name: "x", StartsAt: f.starts})
	assert.ErrorIs(t, err, ErrDisciplineNotFound)
}

func TestListByDiscipline_UnknownDiscipline(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.ListByDiscipline(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDisciplineNotFound)

	events, err := f.svc.ListByDiscipline(context.Background(), f.disc.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestAuthorizeModification_NotFound(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.AuthorizeModification(context.Background(), f.owner, f.disc.ID, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAuthorizeModification_WrongDisciplineIsNotFound(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.AuthorizeModification(context.Background(), f.owner, "other-discipline", f.event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAuthorizeModification_NotOwner(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.AuthorizeModification(context.Background(), f.other, f.disc.ID, f.event.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestAuthorizeModification_NotFoundBeforeForbidden(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.AuthorizeModification(context.Background(), f.other, f.disc.ID, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEvent_ZeroGrantRejected(t *testing.T) {
	f := newEventFixture(t)
	name := "hijacked"

	_, err := f.svc.UpdateEvent(context.Background(), EventGrant{}, model.UpdateEventRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.DeleteEvent(context.Background(), EventGrant{})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.svc.Get(context.Background(), f.disc.ID, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, "100m final", got.Name)
}

func TestUpdateEvent_OwnerChangesStartTime(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	grant, err := f.svc.AuthorizeModification(ctx, f.owner, f.disc.ID, f.event.ID)
	require.NoError(t, err)
	assert.Equal(t, f.event.ID, grant.Event().ID)

	newStart := f.starts.Add(24 * time.Hour)
	updated, err := f.svc.UpdateEvent(ctx, grant, model.UpdateEventRequest{StartsAt: &newStart})
	require.NoError(t, err)
	assert.True(t, updated.StartsAt.Equal(newStart))
	assert.Equal(t, f.owner.ID, updated.OwnerID)

	stored, err := f.svc.Get(ctx, f.disc.ID, f.event.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartsAt.Equal(newStart))
}

func TestUpdateEvent_EndBeforeStart(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	grant, err := f.svc.AuthorizeModification(ctx, f.owner, f.disc.ID, f.event.ID)
	require.NoError(t, err)

	early := f.starts.Add(-time.Hour)
	_, err = f.svc.UpdateEvent(ctx, grant, model.UpdateEventRequest{EndsAt: &early})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "endsAt")
}

func TestUpdateEvent_VanishedAfterCheck(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	grant, err := f.svc.AuthorizeModification(ctx, f.owner, f.disc.ID, f.event.ID)
	require.NoError(t, err)

	// A concurrent request deletes the event between the check and the write.
	require.NoError(t, f.store.Events().Delete(ctx, f.event.ID))

	name := "renamed"
	_, err = f.svc.UpdateEvent(ctx, grant, model.UpdateEventRequest{Name: &name})
	assert.ErrorIs(t, err, ErrEventVanished)

	_, err = f.svc.DeleteEvent(ctx, grant)
	assert.ErrorIs(t, err, ErrEventVanished)
}

func TestDeleteEvent_ReturnsDeletedEvent(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	grant, err := f.svc.AuthorizeModification(ctx, f.owner, f.disc.ID, f.event.ID)
	require.NoError(t, err)

	deleted, err := f.svc.DeleteEvent(ctx, grant)
	require.NoError(t, err)
	assert.Equal(t, f.event.ID, deleted.ID)

	_, err = f.svc.AuthorizeModification(ctx, f.owner, f.disc.ID, f.event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
