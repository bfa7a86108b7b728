package ports

import (
	"context"
	"time"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// OrderInput is the submission snapshot handed to the dispatcher.
type OrderInput struct {
	Reference   string
	SessionID   string
	UserID      string
	ProductID   string
	ProductName string
	VariantID   string
	VariantName string
	ColorID     string
	ColorName   string
	Quantity    int
	UnitPrice   float64
	Total       float64
	SubmittedAt time.Time
}

// OrderRepository persists submitted orders.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
}

// OrderService processes a single submission off the queue.
type OrderService interface {
	Process(ctx context.Context, input OrderInput) error
}
