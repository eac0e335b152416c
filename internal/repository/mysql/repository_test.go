package mysql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&gomysql.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.User{ID: "u1", Email: "a@example.com", Role: model.RoleUser})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateStoresRoleName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "a@example.com", "Ann", "admin", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.User{
		ID: "u1", Email: "a@example.com", Name: "Ann", Role: model.RoleAdmin, PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "a@example.com", "Ann", "user", "hash", now, now))

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserGetByIDConnectionError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	connErr := errors.New("connection refused")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).WillReturnError(connErr)

	_, err := repo.GetByID(context.Background(), "u1")
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "discipline_id", "owner_id", "name", "description", "location",
		"starts_at", "ends_at", "created_at", "updated_at",
	})
}

func TestEventGetByIDNullEnd(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)
	start := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, discipline_id")).
		WithArgs("e1").
		WillReturnRows(eventRows().AddRow("e1", "d1", "u1", "Final", "", "Oslo", start, nil, start, start))

	e, err := repo.GetByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "u1", e.OwnerID)
	assert.True(t, e.StartsAt.Equal(start))
	assert.Nil(t, e.EndsAt)
}

func TestEventListByDiscipline(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)
	start := time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, discipline_id")).
		WithArgs("d1").
		WillReturnRows(eventRows().
			AddRow("e1", "d1", "u1", "Heat 1", "", "", start, end, start, start).
			AddRow("e2", "d1", "u2", "Heat 2", "", "", end, nil, start, start))

	events, err := repo.ListByDiscipline(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].EndsAt)
	assert.True(t, events[0].EndsAt.Equal(end))
	assert.Nil(t, events[1].EndsAt)
}

func TestEventListByDisciplineEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, discipline_id")).WillReturnRows(eventRows())

	events, err := repo.ListByDiscipline(context.Background(), "d1")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventUpdateNeverWritesOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)
	start := time.Now().UTC()

	mock.ExpectExec(`UPDATE events\s+SET name = \?, description = \?, location = \?, starts_at = \?, ends_at = \?, updated_at = \?\s+WHERE id = \?`).
		WithArgs("Final", "desc", "Oslo", start, sql.NullTime{}, start, "e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Event{
		ID: "e1", OwnerID: "u1", Name: "Final", Description: "desc", Location: "Oslo", StartsAt: start, UpdatedAt: start,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventUpdateVanished(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE events")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Event{ID: "e1"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = ?")).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = ?")).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "e1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "e1"), repository.ErrNotFound)
}

func TestDisciplineUpdateDuplicateName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDisciplineRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE disciplines")).
		WillReturnError(&gomysql.MySQLError{Number: errDuplicateEntry})

	err := repo.Update(context.Background(), &model.Discipline{ID: "d1", Name: "Judo"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestDisciplineList(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDisciplineRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, created_at, updated_at FROM disciplines ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow("d1", "Judo", "", now, now).
			AddRow("d2", "Rowing", "boats", now, now))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "boats", list[1].Description)
}

func TestMigrateRunsGoose(t *testing.T) {
	db, _ := newMock(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, ".", gotDir)
}

func TestMigrateError(t *testing.T) {
	db, _ := newMock(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	assert.Error(t, Migrate(context.Background(), db))
}

func TestNewDBRejectsBadDSN(t *testing.T) {
	_, err := NewDB("this is not a dsn")
	assert.Error(t, err)
}

func TestNewDBDoesNotConnect(t *testing.T) {
	db, err := NewDB("user:pass@tcp(127.0.0.1:1)/sportsboard")
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
