package ports

import (
	"context"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name  string
	Price domain.Money
}

type ProductService interface {
	Create(ctx context.Context, id domain.Identity, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id domain.Identity, productID string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id domain.Identity, productID string) error
}
