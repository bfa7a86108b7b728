package ports

import (
	"context"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// ConfigurationView is the wizard state exposed to the transport layer.
type ConfigurationView struct {
	Step       domain.Step
	Product    *domain.Product
	Variant    *domain.ProductVariant
	Color      *domain.ProductVariant
	Quantity   int
	Total      float64
	CanProceed bool
	Complete   bool
}

// ConfiguratorService runs the per-session configuration wizard. State lives
// only for the session; it is discarded on reset, logout or submit.
type ConfiguratorService interface {
	Get(ctx context.Context, sid string) (*ConfigurationView, error)
	SelectProduct(ctx context.Context, sid, productID string) (*ConfigurationView, error)
	SelectVariant(ctx context.Context, sid, variantID string) (*ConfigurationView, error)
	SelectColor(ctx context.Context, sid, colorID string) (*ConfigurationView, error)
	SetQuantity(ctx context.Context, sid string, quantity int) (*ConfigurationView, error)
	Next(ctx context.Context, sid string) (*ConfigurationView, error)
	Back(ctx context.Context, sid string) (*ConfigurationView, error)
	Reset(ctx context.Context, sid string) (*ConfigurationView, error)
	Submit(ctx context.Context, sid, userID string) (reference string, err error)
	Discard(sid string)
}
