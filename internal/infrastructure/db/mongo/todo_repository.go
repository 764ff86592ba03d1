package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type todoDocument struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Priority    int    `bson:"priority"`
	Completed   bool   `bson:"completed"`
	OwnerID     int64  `bson:"owner_id"`
}

func (d *todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Completed:   d.Completed,
		OwnerID:     d.OwnerID,
	}
}

type todoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func ownedBy(id, ownerID int64) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

func (r *todoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	todos := make([]*domain.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, docs[i].toDomain())
	}
	return todos, nil
}

func (r *todoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDocument
	if err := r.col.FindOne(ctx, ownedBy(id, ownerID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *todoRepository) Create(ctx context.Context, t *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.counters, collectionTodos)
	if err != nil {
		return err
	}

	doc := todoDocument{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *todoRepository) Update(ctx context.Context, t *domain.Todo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, ownedBy(t.ID, t.OwnerID), bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"completed":   t.Completed,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownedBy(id, ownerID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
