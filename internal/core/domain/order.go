package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderToDo  OrderStatus = "todo"
	OrderDoing OrderStatus = "doing"
	OrderDone  OrderStatus = "done"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderToDo, OrderDoing, OrderDone:
		return true
	}
	return false
}

// MaxOrderAmount caps the units a single order line may request.
const MaxOrderAmount = 10_000

// CustomerIDLength is the length of generated order customer identifiers.
const CustomerIDLength = 10

// Order is a purchase of Amount units of a product by a user. Price is the
// product price times Amount at creation. Price and CustomerID are assigned
// once by NewOrder and never recomputed.
type Order struct {
	ID         string      `json:"id"`
	ProductID  string      `json:"product"`
	UserID     string      `json:"user"`
	Amount     int         `json:"amount"`
	Status     OrderStatus `json:"status"`
	Price      Money       `json:"price"`
	CustomerID string      `json:"customer_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewOrder snapshots the product price into a new order.
func NewOrder(product *Product, userID string, amount int, status OrderStatus, customerID string, now time.Time) (*Order, error) {
	if amount <= 0 {
		return nil, NewValidationError("amount", "must be greater than 0")
	}
	if amount > MaxOrderAmount {
		return nil, NewValidationError("amount", fmt.Sprintf("must be at most %d", MaxOrderAmount))
	}
	price, err := product.Price.Mul(amount)
	if err != nil {
		return nil, NewValidationError("amount", fmt.Sprintf("order total exceeds %s", MaxMoney))
	}
	if status == "" {
		status = OrderToDo
	}
	if !status.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("%q is not a valid status", status))
	}
	return &Order{
		ProductID:  product.ID,
		UserID:     userID,
		Amount:     amount,
		Status:     status,
		Price:      price,
		CustomerID: customerID,
		CreatedAt:  now,
	}, nil
}

// OrderView joins an order with the names the dashboards display.
type OrderView struct {
	Order
	ProductName string
	Username    string
}

// TopProduct is a product ranked by total ordered amount.
type TopProduct struct {
	Product
	TotalSold int `json:"total_sold"`
}
