package domain

import "time"

// MaxProductNameLength bounds Product.Name.
const MaxProductNameLength = 100

// Product is a catalog item owned by exactly one user.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     Money     `json:"price"`
	OwnerID   string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanBeModifiedBy reports whether id may update or delete the product.
func (p *Product) CanBeModifiedBy(id Identity) bool {
	return p.OwnerID == id.UserID || id.IsManager()
}
