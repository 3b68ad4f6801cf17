package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefront/dashboard-api/internal/core/ports"
)

// AnalyticsService reacts to committed orders: it drops the cached top
// products ranking and records order metrics.
type AnalyticsService struct {
	cache   ports.TopProductsCache
	metrics ports.OrderMetrics
	log     zerolog.Logger
}

var _ ports.OrderEventHandler = (*AnalyticsService)(nil)

// NewAnalyticsService builds the order event consumer. cache and metrics may be nil.
func NewAnalyticsService(cache ports.TopProductsCache, metrics ports.OrderMetrics, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{cache: cache, metrics: metrics, log: log}
}

func (s *AnalyticsService) HandleOrderPlaced(ctx context.Context, event ports.OrderPlaced) error {
	if s.metrics != nil {
		s.metrics.OrderPlaced(event.Price)
	}

	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate top products: %w", err)
	}

	s.log.Debug().Str("order_id", event.OrderID).Msg("top products cache invalidated")
	return nil
}
