package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/api/metrics"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// OrderDispatcher is the interface the configurator uses to hand completed
// configurations to the submission queue.
type OrderDispatcher interface {
	Enqueue(input ports.OrderInput)
}

// ConfiguratorService runs the four-step wizard. Wizard state is held in
// memory per session id and never persisted; it is discarded on reset,
// submit or session teardown.
type ConfiguratorService struct {
	catalog    ports.CatalogRepository
	dispatcher OrderDispatcher
	logger     zerolog.Logger

	mu     sync.Mutex
	active map[string]*domain.Configuration
}

func NewConfiguratorService(catalog ports.CatalogRepository, dispatcher OrderDispatcher, logger zerolog.Logger) *ConfiguratorService {
	return &ConfiguratorService{
		catalog:    catalog,
		dispatcher: dispatcher,
		logger:     logger,
		active:     make(map[string]*domain.Configuration),
	}
}

// Get returns the session's wizard state, creating an empty configuration on
// first access.
func (s *ConfiguratorService) Get(_ context.Context, sid string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.QuotesTotal.Inc()
	return view(s.config(sid)), nil
}

// SelectProduct replaces the selected product, clearing variant, color and
// customizations and advancing the wizard to the size step.
func (s *ConfiguratorService) SelectProduct(ctx context.Context, sid, productID string) (*ports.ConfigurationView, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	cfg.SelectProduct(product)
	return view(cfg), nil
}

func (s *ConfiguratorService) SelectVariant(_ context.Context, sid, variantID string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	if cfg.Product == nil {
		return nil, domain.ErrNoProductSelected
	}
	variant, ok := cfg.Product.Variant(variantID)
	if !ok {
		return nil, domain.ErrVariantNotFound
	}
	if variant.InStock != nil && !*variant.InStock {
		return nil, domain.ErrVariantUnavailable
	}
	if err := cfg.SelectVariant(variant); err != nil {
		return nil, err
	}
	return view(cfg), nil
}

func (s *ConfiguratorService) SelectColor(_ context.Context, sid, colorID string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	if cfg.Product == nil {
		return nil, domain.ErrNoProductSelected
	}
	color, ok := cfg.Product.Color(colorID)
	if !ok {
		return nil, domain.ErrColorNotFound
	}
	if err := cfg.SelectColor(color); err != nil {
		return nil, err
	}
	return view(cfg), nil
}

// SetQuantity stores the quantity clamped to the allowed range. Non-numeric
// input is coerced to the minimum by the transport layer before this call.
func (s *ConfiguratorService) SetQuantity(_ context.Context, sid string, quantity int) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	cfg.SetQuantity(quantity)
	return view(cfg), nil
}

func (s *ConfiguratorService) Next(_ context.Context, sid string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	if err := cfg.Next(); err != nil {
		return nil, err
	}
	return view(cfg), nil
}

func (s *ConfiguratorService) Back(_ context.Context, sid string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	cfg.Back()
	return view(cfg), nil
}

func (s *ConfiguratorService) Reset(_ context.Context, sid string) (*ports.ConfigurationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config(sid)
	cfg.Reset()
	return view(cfg), nil
}

// Submit snapshots the completed configuration as an order, enqueues it for
// persistence and resets the wizard.
func (s *ConfiguratorService) Submit(_ context.Context, sid, userID string) (string, error) {
	s.mu.Lock()

	cfg := s.config(sid)
	if !cfg.Complete() {
		s.mu.Unlock()
		return "", domain.ErrConfigurationPartial
	}

	reference := newOrderReference()
	input := ports.OrderInput{
		Reference:   reference,
		SessionID:   sid,
		UserID:      userID,
		ProductID:   cfg.Product.ID,
		ProductName: cfg.Product.Name,
		VariantID:   cfg.Variant.ID,
		VariantName: cfg.Variant.Name,
		ColorID:     cfg.Color.ID,
		ColorName:   cfg.Color.Name,
		Quantity:    cfg.Quantity,
		UnitPrice:   cfg.Variant.Price,
		Total:       cfg.Total(),
		SubmittedAt: time.Now().UTC(),
	}
	cfg.Reset()
	s.mu.Unlock()

	// Enqueue blocks when the worker shard is saturated; it must never run
	// under the store lock or every session's wizard stalls behind it.
	s.dispatcher.Enqueue(input)
	metrics.OrdersSubmittedTotal.Inc()
	s.logger.Info().Str("reference", reference).Str("user_id", userID).Msg("configuration submitted")

	return reference, nil
}

// Discard drops the session's wizard state. Called on session teardown.
func (s *ConfiguratorService) Discard(sid string) {
	s.mu.Lock()
	delete(s.active, sid)
	s.mu.Unlock()
}

// config returns the live configuration for sid. Callers must hold s.mu.
func (s *ConfiguratorService) config(sid string) *domain.Configuration {
	cfg, ok := s.active[sid]
	if !ok {
		cfg = domain.NewConfiguration()
		s.active[sid] = cfg
	}
	return cfg
}

func view(cfg *domain.Configuration) *ports.ConfigurationView {
	return &ports.ConfigurationView{
		Step:       cfg.Step,
		Product:    cfg.Product,
		Variant:    cfg.Variant,
		Color:      cfg.Color,
		Quantity:   cfg.Quantity,
		Total:      cfg.Total(),
		CanProceed: cfg.CanProceed(),
		Complete:   cfg.Complete(),
	}
}

// newOrderReference returns a unique order reference in the format ORD-XXXXXXXX.
func newOrderReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
