package sqlite

import (
	"time"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

// Timestamps come from the domain layer, so GORM must not overwrite them.

type userModel struct {
	ID           string    `gorm:"primarykey;size:36"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:254"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:16;not null"`
	Bio          string    `gorm:"size:355"`
	Avatar       string    `gorm:"size:255"`
	IsActive     bool      `gorm:"not null"`
	Statistics   []int     `gorm:"serializer:json"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (userModel) TableName() string { return "users" }

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Bio:          u.Bio,
		Avatar:       u.Avatar,
		IsActive:     u.IsActive,
		Statistics:   u.Statistics,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Bio:          m.Bio,
		Avatar:       m.Avatar,
		IsActive:     m.IsActive,
		Statistics:   m.Statistics,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type productModel struct {
	ID         string    `gorm:"primarykey;size:36"`
	Name       string    `gorm:"size:100;not null"`
	PriceCents int64     `gorm:"not null"`
	OwnerID    string    `gorm:"size:36;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false"`
}

func (productModel) TableName() string { return "products" }

func (m productModel) toDomain() *domain.Product {
	return &domain.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     domain.Money(m.PriceCents),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type orderModel struct {
	ID         string    `gorm:"primarykey;size:36"`
	ProductID  string    `gorm:"size:36;not null;index"`
	UserID     string    `gorm:"size:36;not null;index"`
	Amount     int       `gorm:"not null"`
	Status     string    `gorm:"size:5;not null"`
	PriceCents int64     `gorm:"not null"`
	CustomerID string    `gorm:"size:10;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false;index"`
}

func (orderModel) TableName() string { return "orders" }

func (m orderModel) toDomain() *domain.Order {
	return &domain.Order{
		ID:         m.ID,
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Status:     domain.OrderStatus(m.Status),
		Price:      domain.Money(m.PriceCents),
		CustomerID: m.CustomerID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}
