package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateForProduct reads the product and inserts the order in one transaction.
func (r *OrderRepository) CreateForProduct(ctx context.Context, productID string, build ports.OrderBuilder) (*domain.Order, error) {
	var created *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, productID)
		if err != nil {
			return err
		}
		order, err := build(product)
		if err != nil {
			return err
		}

		m := orderModel{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			UserID:     order.UserID,
			Amount:     order.Amount,
			Status:     string(order.Status),
			PriceCents: order.Price.Cents(),
			CustomerID: order.CustomerID,
			CreatedAt:  order.CreatedAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		created = m.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type orderViewRow struct {
	Order       orderModel `gorm:"embedded"`
	ProductName string
	Username    string
}

// ListViews joins orders with product name and username, newest first.
func (r *OrderRepository) ListViews(ctx context.Context, limit int) ([]*domain.OrderView, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, products.name AS product_name, users.username AS username").
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC, orders.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []orderViewRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]*domain.OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &domain.OrderView{
			Order:       *row.Order.toDomain(),
			ProductName: row.ProductName,
			Username:    row.Username,
		})
	}
	return views, nil
}

type topProductRow struct {
	Product   productModel `gorm:"embedded"`
	TotalSold int
}

// TopProducts sums ordered amounts per product. Ties keep a stable order by id.
func (r *OrderRepository) TopProducts(ctx context.Context, limit int) ([]*domain.TopProduct, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("products.*, SUM(orders.amount) AS total_sold").
		Joins("JOIN products ON products.id = orders.product_id").
		Group("products.id").
		Order("total_sold DESC, products.id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []topProductRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}

	top := make([]*domain.TopProduct, 0, len(rows))
	for _, row := range rows {
		top = append(top, &domain.TopProduct{Product: *row.Product.toDomain(), TotalSold: row.TotalSold})
	}
	return top, nil
}
