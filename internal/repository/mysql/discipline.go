package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

const disciplineColumns = `id, name, description, created_at, updated_at`

// DisciplineRepository handles discipline persistence operations.
type DisciplineRepository struct {
	db *sql.DB
}

// NewDisciplineRepository creates a new DisciplineRepository.
func NewDisciplineRepository(db *sql.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

func (r *DisciplineRepository) Create(ctx context.Context, d *model.Discipline) error {
	query := `INSERT INTO disciplines (` + disciplineColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt)
	if isDuplicateEntryError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *DisciplineRepository) GetByID(ctx context.Context, id string) (*model.Discipline, error) {
	query := `SELECT ` + disciplineColumns + ` FROM disciplines WHERE id = ?`

	var d model.Discipline
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns all disciplines ordered by name.
func (r *DisciplineRepository) List(ctx context.Context) ([]model.Discipline, error) {
	query := `SELECT ` + disciplineColumns + ` FROM disciplines ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Discipline{}
	for rows.Next() {
		var d model.Discipline
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DisciplineRepository) Update(ctx context.Context, d *model.Discipline) error {
	query := `UPDATE disciplines SET name = ?, description = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, d.Name, d.Description, d.UpdatedAt, d.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return expectOneRow(result)
}

// Delete removes the discipline; events go with it through ON DELETE CASCADE.
func (r *DisciplineRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM disciplines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}
