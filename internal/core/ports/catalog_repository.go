package ports

import (
	"context"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// CatalogRepository reads configurable products.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}
