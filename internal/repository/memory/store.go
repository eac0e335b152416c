// Package memory is an in-process Store used for local development and tests.
// Records are copied on the way in and out, so callers never share memory with the store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// Store holds users, disciplines and events in maps guarded by one lock.
type Store struct {
	mu          sync.RWMutex
	users       map[string]model.User
	disciplines map[string]model.Discipline
	events      map[string]model.Event
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		disciplines: make(map[string]model.Discipline),
		events:      make(map[string]model.Event),
	}
}

func (s *Store) Users() repository.UserStore             { return userStore{s} }
func (s *Store) Disciplines() repository.DisciplineStore { return disciplineStore{s} }
func (s *Store) Events() repository.EventStore           { return eventStore{s} }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u userStore) GetByID(_ context.Context, id string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u userStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

type disciplineStore struct{ s *Store }

func (d disciplineStore) Create(_ context.Context, disc *model.Discipline) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if d.nameTaken(disc.Name, "") {
		return repository.ErrDuplicate
	}
	d.s.disciplines[disc.ID] = *disc
	return nil
}

func (d disciplineStore) GetByID(_ context.Context, id string) (*model.Discipline, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	disc, ok := d.s.disciplines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &disc, nil
}

func (d disciplineStore) List(context.Context) ([]model.Discipline, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	out := make([]model.Discipline, 0, len(d.s.disciplines))
	for _, disc := range d.s.disciplines {
		out = append(out, disc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d disciplineStore) Update(_ context.Context, disc *model.Discipline) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	existing, ok := d.s.disciplines[disc.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if d.nameTaken(disc.Name, disc.ID) {
		return repository.ErrDuplicate
	}
	existing.Name = disc.Name
	existing.Description = disc.Description
	existing.UpdatedAt = disc.UpdatedAt
	d.s.disciplines[disc.ID] = existing
	return nil
}

func (d disciplineStore) Delete(_ context.Context, id string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.disciplines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(d.s.disciplines, id)
	for eid, e := range d.s.events {
		if e.DisciplineID == id {
			delete(d.s.events, eid)
		}
	}
	return nil
}

// nameTaken must be called with the lock held.
func (d disciplineStore) nameTaken(name, exceptID string) bool {
	for id, disc := range d.s.disciplines {
		if id != exceptID && strings.EqualFold(disc.Name, name) {
			return true
		}
	}
	return false
}

type eventStore struct{ s *Store }

func (e eventStore) Create(_ context.Context, ev *model.Event) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.events[ev.ID]; ok {
		return repository.ErrDuplicate
	}
	e.s.events[ev.ID] = cloneEvent(*ev)
	return nil
}

func (e eventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	ev, ok := e.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneEvent(ev)
	return &out, nil
}

func (e eventStore) ListByDiscipline(_ context.Context, disciplineID string) ([]model.Event, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()

	out := []model.Event{}
	for _, ev := range e.s.events {
		if ev.DisciplineID == disciplineID {
			out = append(out, cloneEvent(ev))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (e eventStore) Update(_ context.Context, ev *model.Event) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	existing, ok := e.s.events[ev.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = ev.Name
	existing.Description = ev.Description
	existing.Location = ev.Location
	existing.StartsAt = ev.StartsAt
	existing.EndsAt = ev.EndsAt
	existing.UpdatedAt = ev.UpdatedAt
	e.s.events[ev.ID] = cloneEvent(existing)
	return nil
}

func (e eventStore) Delete(_ context.Context, id string) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(e.s.events, id)
	return nil
}

func cloneEvent(ev model.Event) model.Event {
	if ev.EndsAt != nil {
		ends := *ev.EndsAt
		ev.EndsAt = &ends
	}
	return ev
}
