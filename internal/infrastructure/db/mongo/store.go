package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todo-api/internal/core/ports"
)

const (
	collectionUsers    = "users"
	collectionTodos    = "todos"
	collectionCounters = "counters"
)

// Store is a ports.Gateway backed by a MongoDB database. Every mutation is a
// single-document write, so handles have nothing to commit or roll back.
type Store struct {
	db *mongo.Database
}

var _ ports.Gateway = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Acquire(context.Context) (ports.Handle, error) {
	return &handle{db: s.db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique account keys and the owner lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := s.db.Collection(collectionUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	todoIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}}},
	}
	if _, err := s.db.Collection(collectionTodos).Indexes().CreateMany(ctx, todoIndexes); err != nil {
		return fmt.Errorf("create todo indexes: %w", err)
	}
	return nil
}

type handle struct {
	db *mongo.Database
}

func (h *handle) Todos() ports.TodoRepository {
	return &todoRepository{col: h.db.Collection(collectionTodos), counters: h.db.Collection(collectionCounters)}
}

func (h *handle) Users() ports.UserRepository {
	return &userRepository{col: h.db.Collection(collectionUsers), counters: h.db.Collection(collectionCounters)}
}

func (h *handle) Commit() error { return nil }
func (h *handle) Release()      {}

// nextID atomically increments the named sequence and returns its new value.
func nextID(ctx context.Context, counters *mongo.Collection, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}
