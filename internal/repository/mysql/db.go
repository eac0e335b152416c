// Package mysql implements the repository contracts on MySQL via database/sql.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	"github.com/sportsboard/sportsboard-go/internal/repository"
	"github.com/sportsboard/sportsboard-go/internal/repository/mysql/migrations"
)

// errDuplicateEntry is MySQL's ER_DUP_ENTRY.
const errDuplicateEntry = 1062

// gooseUp is swapped in tests.
var gooseUp = goose.UpContext

// Store is the MySQL-backed repository.Store.
type Store struct {
	db          *sql.DB
	users       *UserRepository
	disciplines *DisciplineRepository
	events      *EventRepository
}

// NewDB creates a MySQL connection pool from dsn.
//
// Timestamps are parsed into time.Time in UTC, and ClientFoundRows is forced on
// so an UPDATE that matches a row but changes nothing still reports one affected
// row. The repositories rely on that to tell "missing" from "unchanged".
func NewDB(dsn string) (*sql.DB, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Open connects to MySQL, applies pending migrations and returns a Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := NewDB(dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return NewStore(db), nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")
	return nil
}

// NewStore wraps an open pool. It does not run migrations.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		users:       NewUserRepository(db),
		disciplines: NewDisciplineRepository(db),
		events:      NewEventRepository(db),
	}
}

func (s *Store) Users() repository.UserStore             { return s.users }
func (s *Store) Disciplines() repository.DisciplineStore { return s.disciplines }
func (s *Store) Events() repository.EventStore           { return s.events }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func isDuplicateEntryError(err error) bool {
	var me *gomysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

// expectOneRow maps a zero RowsAffected to repository.ErrNotFound.
func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
