package ports

import (
	"context"
	"time"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// OrderBuilder turns the product loaded inside the creation transaction
// into the order to insert.
type OrderBuilder func(p *domain.Product) (*domain.Order, error)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// CreateForProduct loads the product and inserts the order built from it
	// in one transaction, so the price snapshot cannot race a price update.
	CreateForProduct(ctx context.Context, productID string, build OrderBuilder) (*domain.Order, error)
	// ListViews returns orders joined with product name and username,
	// newest first. limit <= 0 means no limit.
	ListViews(ctx context.Context, limit int) ([]*domain.OrderView, error)
	// TopProducts ranks products by the sum of ordered amounts.
	TopProducts(ctx context.Context, limit int) ([]*domain.TopProduct, error)
}

// TopProductsCache is the cache-aside store for the top products ranking.
type TopProductsCache interface {
	Get(ctx context.Context) ([]*domain.TopProduct, bool, error)
	Set(ctx context.Context, top []*domain.TopProduct) error
	Invalidate(ctx context.Context) error
}

// OrderPlaced is published after an order was committed.
type OrderPlaced struct {
	OrderID   string
	ProductID string
	UserID    string
	Amount    int
	Price     domain.Money
	CreatedAt time.Time
}

// OrderEventPublisher hands OrderPlaced events to asynchronous consumers.
type OrderEventPublisher interface {
	Publish(event OrderPlaced)
}

// OrderEventHandler consumes OrderPlaced events.
type OrderEventHandler interface {
	HandleOrderPlaced(ctx context.Context, event OrderPlaced) error
}

// OrderMetrics records committed orders. revenue is the order's frozen total.
type OrderMetrics interface {
	OrderPlaced(revenue domain.Money)
}

// CreateOrderInput is a single line of a batch order request.
type CreateOrderInput struct {
	ProductID string
	Amount    int
	Status    domain.OrderStatus
}

type OrderService interface {
	CreateOrders(ctx context.Context, id domain.Identity, in []CreateOrderInput) ([]*domain.Order, error)
	LastOrders(ctx context.Context) ([]*domain.OrderView, error)
	RecentOrders(ctx context.Context) ([]*domain.OrderView, error)
	TopProducts(ctx context.Context) ([]*domain.TopProduct, error)
}
