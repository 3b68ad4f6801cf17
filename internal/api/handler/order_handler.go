package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
	binder  echo.DefaultBinder
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// LastOrders handles GET /orders.
//
// @Summary      Last orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   lastOrderItem
// @Failure      401  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) LastOrders(c echo.Context) error {
	views, err := h.service.LastOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLastOrderItems(views))
}

// Create handles POST /orders with a JSON array of order lines. Every line
// is placed for the caller.
//
// @Summary      Place orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []orderLineRequest  true  "Order lines"
// @Success      201   {array}   domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var lines []orderLineRequest
	if err := h.binder.BindBody(c, &lines); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := make([]ports.CreateOrderInput, 0, len(lines))
	for _, l := range lines {
		in = append(in, ports.CreateOrderInput{
			ProductID: l.Product,
			Amount:    l.Amount,
			Status:    domain.OrderStatus(l.Status),
		})
	}

	orders, err := h.service.CreateOrders(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orders)
}

// RecentOrders handles GET /orders/recent.
//
// @Summary      Recent orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   recentOrderItem
// @Failure      401  {object}  errorResponse
// @Router       /orders/recent [get]
func (h *OrderHandler) RecentOrders(c echo.Context) error {
	views, err := h.service.RecentOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecentOrderItems(views))
}

// TopProducts handles GET /products/top.
//
// @Summary      Top sold products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   topProductItem
// @Failure      401  {object}  errorResponse
// @Router       /products/top [get]
func (h *OrderHandler) TopProducts(c echo.Context) error {
	top, err := h.service.TopProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTopProductItems(top))
}
