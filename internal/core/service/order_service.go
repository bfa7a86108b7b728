package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/api/metrics"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// OrderService persists submitted configurations dequeued by the dispatcher.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

func (s *OrderService) Process(ctx context.Context, input ports.OrderInput) error {
	order := &domain.Order{
		Reference:   input.Reference,
		SessionID:   input.SessionID,
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		VariantID:   input.VariantID,
		VariantName: input.VariantName,
		ColorID:     input.ColorID,
		ColorName:   input.ColorName,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Total:       input.Total,
		SubmittedAt: input.SubmittedAt,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		metrics.OrdersErrorsTotal.WithLabelValues("insert_failed").Inc()
		s.logger.Error().Err(err).Str("reference", input.Reference).Msg("failed to persist order")
		return err
	}

	s.logger.Info().Str("reference", input.Reference).Float64("total", input.Total).Msg("order persisted")
	return nil
}
