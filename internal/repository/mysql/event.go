package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

const eventColumns = `id, discipline_id, owner_id, name, description, location, starts_at, ends_at, created_at, updated_at`

// EventRepository handles event persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.DisciplineID, e.OwnerID, e.Name, e.Description, e.Location,
		e.StartsAt, nullTime(e), e.CreatedAt, e.UpdatedAt,
	)
	if isDuplicateEntryError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListByDiscipline returns a discipline's events, earliest first.
func (r *EventRepository) ListByDiscipline(ctx context.Context, disciplineID string) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE discipline_id = ? ORDER BY starts_at ASC`

	rows, err := r.db.QueryContext(ctx, query, disciplineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update writes the mutable fields only; owner_id and discipline_id are never touched.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	query := `UPDATE events
		SET name = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		e.Name, e.Description, e.Location, e.StartsAt, nullTime(e), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e    model.Event
		ends sql.NullTime
	)
	err := row.Scan(&e.ID, &e.DisciplineID, &e.OwnerID, &e.Name, &e.Description, &e.Location,
		&e.StartsAt, &ends, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ends.Valid {
		t := ends.Time
		e.EndsAt = &t
	}
	return &e, nil
}

func nullTime(e *model.Event) sql.NullTime {
	if e.EndsAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *e.EndsAt, Valid: true}
}
