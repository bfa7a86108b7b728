package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

const ordersCollection = "orders"

// MongoOrderRepository persists submitted configuration orders.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	doc := *order
	doc.ID = "" // let mongo assign _id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}
