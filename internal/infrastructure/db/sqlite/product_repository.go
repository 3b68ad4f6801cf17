package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	m := productModel{
		ID:         uuid.NewString(),
		Name:       p.Name,
		PriceCents: p.Price.Cents(),
		OwnerID:    p.OwnerID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return findProduct(r.db.WithContext(ctx), id)
}

// findProduct also runs inside the order transaction.
func findProduct(db *gorm.DB, id string) (*domain.Product, error) {
	var m productModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return m.toDomain(), nil
}

// List returns products newest first.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("created_at DESC, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, m.toDomain())
	}
	return products, nil
}

// Update rewrites name and price only. Ownership never changes.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        p.Name,
		"price_cents": p.Price.Cents(),
		"updated_at":  p.UpdatedAt,
	})
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrProductNotFound
	}
	return findProduct(db, p.ID)
}

// Delete removes the product and the orders placed for it.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&productModel{}, "id = ?", id)
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if result.RowsAffected == 0 {
			return domain.ErrProductNotFound
		}
		if err := tx.Delete(&orderModel{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product orders: %w", err)
		}
		return nil
	})
}
