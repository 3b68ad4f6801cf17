package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

const (
	topProductsLimit  = 3
	recentOrdersLimit = 10
)

type OrderService struct {
	orders     ports.OrderRepository
	cache      ports.TopProductsCache
	events     ports.OrderEventPublisher
	customerID func() string
	log        zerolog.Logger
	now        func() time.Time
}

var _ ports.OrderService = (*OrderService)(nil)

// NewOrderService wires the order use cases. cache and events may be nil.
func NewOrderService(
	orders ports.OrderRepository,
	cache ports.TopProductsCache,
	events ports.OrderEventPublisher,
	customerID func() string,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:     orders,
		cache:      cache,
		events:     events,
		customerID: customerID,
		log:        log,
		now:        time.Now,
	}
}

// CreateOrders places every line on behalf of the caller. All lines are
// validated before the first insert; each insert commits independently.
func (s *OrderService) CreateOrders(ctx context.Context, id domain.Identity, in []ports.CreateOrderInput) ([]*domain.Order, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("orders", "at least one order is required")
	}

	fields := map[string]string{}
	for i, line := range in {
		if line.ProductID == "" {
			fields[fmt.Sprintf("[%d].product", i)] = "this field is required"
		}
		switch {
		case line.Amount <= 0:
			fields[fmt.Sprintf("[%d].amount", i)] = "must be greater than 0"
		case line.Amount > domain.MaxOrderAmount:
			fields[fmt.Sprintf("[%d].amount", i)] = fmt.Sprintf("must be at most %d", domain.MaxOrderAmount)
		}
		if line.Status != "" && !line.Status.Valid() {
			fields[fmt.Sprintf("[%d].status", i)] = fmt.Sprintf("%q is not a valid choice", line.Status)
		}
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	created := make([]*domain.Order, 0, len(in))
	for i, line := range in {
		order, err := s.orders.CreateForProduct(ctx, line.ProductID, func(p *domain.Product) (*domain.Order, error) {
			return domain.NewOrder(p, id.UserID, line.Amount, line.Status, s.customerID(), s.now().UTC())
		})
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, lineValidationError(i, verr)
		}
		if err != nil {
			s.log.Error().Err(err).Str("product_id", line.ProductID).Msg("failed to create order")
			return nil, err
		}
		created = append(created, order)

		s.log.Info().
			Str("order_id", order.ID).
			Str("customer_id", order.CustomerID).
			Str("price", order.Price.String()).
			Msg("order created")

		if s.events != nil {
			s.events.Publish(ports.OrderPlaced{
				OrderID:   order.ID,
				ProductID: order.ProductID,
				UserID:    order.UserID,
				Amount:    order.Amount,
				Price:     order.Price,
				CreatedAt: order.CreatedAt,
			})
		}
	}
	return created, nil
}

// lineValidationError prefixes field names with the position of the line.
func lineValidationError(i int, verr *domain.ValidationError) *domain.ValidationError {
	fields := make(map[string]string, len(verr.Fields))
	for k, msg := range verr.Fields {
		fields[fmt.Sprintf("[%d].%s", i, k)] = msg
	}
	return &domain.ValidationError{Fields: fields}
}

// LastOrders lists every order, newest first.
func (s *OrderService) LastOrders(ctx context.Context) ([]*domain.OrderView, error) {
	return s.orders.ListViews(ctx, 0)
}

func (s *OrderService) RecentOrders(ctx context.Context) ([]*domain.OrderView, error) {
	return s.orders.ListViews(ctx, recentOrdersLimit)
}

// TopProducts returns the best sellers by total ordered amount, served from
// the cache when one is configured.
func (s *OrderService) TopProducts(ctx context.Context) ([]*domain.TopProduct, error) {
	if s.cache != nil {
		top, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("top products cache read failed")
		} else if ok {
			return top, nil
		}
	}

	top, err := s.orders.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, top); err != nil {
			s.log.Warn().Err(err).Msg("top products cache write failed")
		}
	}
	return top, nil
}
