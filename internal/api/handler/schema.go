package handler

import "github.com/storefront/dashboard-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type registerResponse struct {
	User         profileResponse `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// --- Users ---

type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

type bioRequest struct {
	Bio string `json:"bio" validate:"max=355"`
}

type profileRequest struct {
	Username *string `json:"username" validate:"omitempty,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Bio      *string `json:"bio"      validate:"omitempty,max=355"`
	Avatar   *string `json:"avatar"   validate:"omitempty,max=255"`
}

type userListItem struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

type chartResponse struct {
	Data []int `json:"data"`
}

// --- Products ---

type productRequest struct {
	Name  string        `json:"name"  validate:"required,max=100"`
	Price *domain.Money `json:"price"`
}

// --- Orders ---

// orderLineRequest is one element of the POST /orders array. Lines are
// validated by the order service so errors carry the element index.
type orderLineRequest struct {
	Product string `json:"product"`
	Amount  int    `json:"amount"`
	Status  string `json:"status,omitempty"`
}

type lastOrderItem struct {
	CustomerID  string `json:"customer_id"`
	ProductName string `json:"product_name"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

type recentOrderItem struct {
	ProductName string       `json:"product_name"`
	Price       domain.Money `json:"price"`
	Username    string       `json:"username"`
	CreatedAt   string       `json:"created_at"`
}

type topProductItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	User      string       `json:"user"`
	TotalSold int          `json:"total_sold"`
}
