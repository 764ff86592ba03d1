package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type userDocument struct {
	ID             int64   `bson:"_id"`
	Email          string  `bson:"email"`
	Username       string  `bson:"username"`
	FirstName      string  `bson:"first_name"`
	LastName       string  `bson:"last_name"`
	HashedPassword string  `bson:"hashed_password"`
	IsActive       bool    `bson:"is_active"`
	Role           string  `bson:"role"`
	PhoneNumber    *string `bson:"phone_number"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID,
		Username:       d.Username,
		Email:          d.Email,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		HashedPassword: d.HashedPassword,
		Role:           d.Role,
		PhoneNumber:    d.PhoneNumber,
		IsActive:       d.IsActive,
	}
}

type userRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.counters, collectionUsers)
	if err != nil {
		return err
	}

	doc := userDocument{
		ID:             id,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		Role:           u.Role,
		PhoneNumber:    u.PhoneNumber,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.set(ctx, id, bson.M{"hashed_password": hashedPassword})
}

func (r *userRepository) UpdatePhoneNumber(ctx context.Context, id int64, phone *string) error {
	return r.set(ctx, id, bson.M{"phone_number": phone})
}

func (r *userRepository) set(ctx context.Context, id int64, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
