package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// EventRepository stores events in the events collection.
type EventRepository struct {
	coll *mongo.Collection
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	_, err := r.coll.InsertOne(ctx, newEventDocument(e))
	return translate(err)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var doc eventDocument
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	e := doc.model()
	return &e, nil
}

func (r *EventRepository) ListByDiscipline(ctx context.Context, disciplineID string) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"discipline": disciplineID}, opts)
	if err != nil {
		return nil, err
	}

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]model.Event, len(docs))
	for i, doc := range docs {
		out[i] = doc.model()
	}
	return out, nil
}

// Update sets the mutable fields; owner and discipline are left as stored.
func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	set := bson.M{
		"name":   e.Name,
		"desc":   e.Description,
		"loc":    e.Location,
		"starts": e.StartsAt,
		"u":      e.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if e.EndsAt != nil {
		set["ends"] = *e.EndsAt
	} else {
		update["$unset"] = bson.M{"ends": ""}
	}

	res, err := r.coll.UpdateOne(ctx, byID(e.ID), update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
