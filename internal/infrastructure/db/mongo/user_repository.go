package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

const usersCollection = "users"

// MongoUserRepository backs the local identity provider.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the indexes on the users collection. The unique
// email index is what makes duplicate registrations surface as
// domain.ErrUserExists; without it a second insert would silently succeed.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, userIndexes())
	return err
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	Permissions  []string           `bson:"permissions"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *ports.StoredUser) (*ports.StoredUser, error) {
	doc := mongoUser{
		Name:         user.Record.Name,
		Email:        user.Record.Email,
		PasswordHash: user.PasswordHash,
		Roles:        user.Record.Roles,
		Permissions:  user.Record.Permissions,
		CreatedAt:    user.Record.CreatedAt.Unix(),
		UpdatedAt:    user.Record.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapInsertError(err)
	}

	// fetch back to get ID
	created, err := r.FindByEmail(ctx, user.Record.Email)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*ports.StoredUser, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &ports.StoredUser{
		Record: domain.UserRecord{
			ID:          mu.ID.Hex(),
			Name:        mu.Name,
			Email:       mu.Email,
			Roles:       mu.Roles,
			Permissions: mu.Permissions,
			CreatedAt:   unixToTime(mu.CreatedAt),
			UpdatedAt:   unixToTime(mu.UpdatedAt),
		},
		PasswordHash: mu.PasswordHash,
	}, nil
}

// mapInsertError translates a unique-index violation on email into the
// domain duplicate-user error.
func mapInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	return fmt.Errorf("insert user: %w", err)
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
