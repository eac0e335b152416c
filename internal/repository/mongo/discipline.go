package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
)

// DisciplineRepository stores disciplines and cascades deletes into events.
type DisciplineRepository struct {
	coll   *mongo.Collection
	events *mongo.Collection
}

func (r *DisciplineRepository) Create(ctx context.Context, d *model.Discipline) error {
	_, err := r.coll.InsertOne(ctx, newDisciplineDocument(d))
	return translate(err)
}

func (r *DisciplineRepository) GetByID(ctx context.Context, id string) (*model.Discipline, error) {
	var doc disciplineDocument
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	d := doc.model()
	return &d, nil
}

func (r *DisciplineRepository) List(ctx context.Context) ([]model.Discipline, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []disciplineDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]model.Discipline, len(docs))
	for i, doc := range docs {
		out[i] = doc.model()
	}
	return out, nil
}

func (r *DisciplineRepository) Update(ctx context.Context, d *model.Discipline) error {
	res, err := r.coll.UpdateOne(ctx, byID(d.ID), bson.M{"$set": bson.M{
		"name":  d.Name,
		"lname": strings.ToLower(d.Name),
		"desc":  d.Description,
		"u":     d.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the discipline, then its events. The two writes are not atomic;
// an interrupted cascade leaves orphaned events that no route can reach.
func (r *DisciplineRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	if _, err := r.events.DeleteMany(ctx, bson.M{"discipline": id}); err != nil {
		return fmt.Errorf("delete events of discipline: %w", err)
	}
	return nil
}
