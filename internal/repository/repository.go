// Package repository defines the persistence contracts shared by the MySQL,
// MongoDB and in-memory stores.
package repository

import (
	"context"
	"errors"

	"github.com/sportsboard/sportsboard-go/internal/model"
)

var (
	// ErrNotFound is returned when the addressed record does not exist,
	// including when it vanished between a read and a write.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique field (user email, discipline name) is taken.
	ErrDuplicate = errors.New("record already exists")
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// DisciplineStore persists sport disciplines.
type DisciplineStore interface {
	Create(ctx context.Context, d *model.Discipline) error
	GetByID(ctx context.Context, id string) (*model.Discipline, error)
	List(ctx context.Context) ([]model.Discipline, error)
	Update(ctx context.Context, d *model.Discipline) error
	// Delete removes the discipline and every event filed under it.
	Delete(ctx context.Context, id string) error
}

// EventStore persists events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByDiscipline(ctx context.Context, disciplineID string) ([]model.Event, error)
	// Update overwrites the mutable fields of an existing event.
	// OwnerID and DisciplineID are never written.
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
}

// Store bundles every collection a backend provides.
type Store interface {
	Users() UserStore
	Disciplines() DisciplineStore
	Events() EventStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
