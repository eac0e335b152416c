// Package mongo implements the repository contracts on MongoDB using the
// official driver. Each record kind lives in its own collection and is keyed
// by its UUID string in _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sportsboard/sportsboard-go/internal/repository"
)

const (
	// DefaultDatabaseName is used when Config.Database is empty.
	DefaultDatabaseName = "sportsboard"

	usersCollection       = "users"
	disciplinesCollection = "disciplines"
	eventsCollection      = "events"

	connectTimeout = 10 * time.Second
)

// Config holds the MongoDB connection settings.
type Config struct {
	// URI is a mongodb:// or mongodb+srv:// connection string.
	URI string

	// Database is the name of the database holding all collections.
	Database string
}

// Store is the MongoDB-backed repository.Store.
// It's safe to use concurrently from multiple goroutines.
type Store struct {
	client      *mongo.Client
	users       *UserRepository
	disciplines *DisciplineRepository
	events      *EventRepository
}

// Open connects to MongoDB, verifies the connection and ensures indexes exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabaseName
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewStore(client, cfg.Database)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewStore wraps a connected client. It does not create indexes.
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:      client,
		users:       &UserRepository{coll: db.Collection(usersCollection)},
		disciplines: &DisciplineRepository{coll: db.Collection(disciplinesCollection), events: db.Collection(eventsCollection)},
		events:      &EventRepository{coll: db.Collection(eventsCollection)},
	}
}

func (s *Store) Users() repository.UserStore             { return s.users }
func (s *Store) Disciplines() repository.DisciplineStore { return s.disciplines }
func (s *Store) Events() repository.EventStore           { return s.events }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lemail", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	if _, err := s.disciplines.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lname", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create disciplines index: %w", err)
	}

	if _, err := s.events.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "discipline", Value: 1}, {Key: "starts", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create events index: %w", err)
	}
	return nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}
