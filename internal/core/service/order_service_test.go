package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type stubOrderRepo struct {
	products map[string]*domain.Product
	orders   []*domain.Order
	topCalls int
}

func newStubOrderRepo(products ...*domain.Product) *stubOrderRepo {
	r := &stubOrderRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubOrderRepo) CreateForProduct(_ context.Context, productID string, build ports.OrderBuilder) (*domain.Order, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	order, err := build(&clone)
	if err != nil {
		return nil, err
	}
	order.ID = "o" + strconv.Itoa(len(r.orders)+1)
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *stubOrderRepo) ListViews(_ context.Context, limit int) ([]*domain.OrderView, error) {
	var out []*domain.OrderView
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		out = append(out, &domain.OrderView{Order: *o, ProductName: r.products[o.ProductID].Name})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubOrderRepo) TopProducts(_ context.Context, limit int) ([]*domain.TopProduct, error) {
	r.topCalls++
	var out []*domain.TopProduct
	for _, p := range r.products {
		out = append(out, &domain.TopProduct{Product: *p})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubTopCache struct {
	top         []*domain.TopProduct
	invalidated int
}

func (c *stubTopCache) Get(context.Context) ([]*domain.TopProduct, bool, error) {
	return c.top, c.top != nil, nil
}

func (c *stubTopCache) Set(_ context.Context, top []*domain.TopProduct) error {
	c.top = top
	return nil
}

func (c *stubTopCache) Invalidate(context.Context) error {
	c.top = nil
	c.invalidated++
	return nil
}

type recordingPublisher struct {
	events []ports.OrderPlaced
}

func (p *recordingPublisher) Publish(e ports.OrderPlaced) { p.events = append(p.events, e) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "CID" + strconv.Itoa(n)
	}
}

var buyer = domain.Identity{UserID: "buyer-1", Role: domain.RoleUser}

func TestOrderService_CreateOrders_FreezesPrice(t *testing.T) {
	widget := &domain.Product{ID: "p1", Name: "Widget", Price: domain.MustParseMoney("12.50"), OwnerID: "owner"}
	repo := newStubOrderRepo(widget)
	pub := &recordingPublisher{}
	gen, err := NewCustomerIDGenerator()
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	svc := NewOrderService(repo, nil, pub, gen, discardLogger)

	orders, err := svc.CreateOrders(context.Background(), buyer, []ports.CreateOrderInput{
		{ProductID: "p1", Amount: 3},
		{ProductID: "p1", Amount: 3},
	})
	if err != nil {
		t.Fatalf("CreateOrders returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	first, second := orders[0], orders[1]
	if first.Price.String() != "37.50" {
		t.Fatalf("expected price 37.50, got %s", first.Price)
	}
	if first.Status != domain.OrderToDo {
		t.Fatalf("expected default status todo, got %s", first.Status)
	}
	if first.UserID != buyer.UserID {
		t.Fatalf("expected order for caller, got %s", first.UserID)
	}
	for _, o := range orders {
		if o.CustomerID == "" || len(o.CustomerID) > domain.CustomerIDLength {
			t.Fatalf("unexpected customer id %q", o.CustomerID)
		}
	}
	if first.CustomerID == second.CustomerID {
		t.Fatalf("expected distinct customer ids, both %q", first.CustomerID)
	}

	// A later price change does not touch placed orders.
	widget.Price = domain.MustParseMoney("99.99")
	if repo.orders[0].Price.String() != "37.50" {
		t.Fatalf("order price changed to %s", repo.orders[0].Price)
	}

	if len(pub.events) != 2 || pub.events[0].OrderID != first.ID {
		t.Fatalf("expected one event per order, got %+v", pub.events)
	}
}

func TestOrderService_CreateOrders_Validation(t *testing.T) {
	repo := newStubOrderRepo(&domain.Product{ID: "p1", Price: 100})
	svc := NewOrderService(repo, nil, nil, sequentialIDs(), discardLogger)

	_, err := svc.CreateOrders(context.Background(), buyer, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty batch, got %v", err)
	}

	_, err = svc.CreateOrders(context.Background(), buyer, []ports.CreateOrderInput{
		{ProductID: "p1", Amount: 1},
		{ProductID: "p1", Amount: 0, Status: "shipped"},
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["[1].amount"]; !ok {
		t.Fatalf("expected amount error on line 1, got %v", ve.Fields)
	}
	if _, ok := ve.Fields["[1].status"]; !ok {
		t.Fatalf("expected status error on line 1, got %v", ve.Fields)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("expected no orders persisted, got %d", len(repo.orders))
	}
}

func TestOrderService_CreateOrders_RejectsOversizedLines(t *testing.T) {
	pricey := &domain.Product{ID: "p1", Price: domain.MaxMoney}
	repo := newStubOrderRepo(pricey)
	svc := NewOrderService(repo, nil, nil, sequentialIDs(), discardLogger)

	_, err := svc.CreateOrders(context.Background(), buyer, []ports.CreateOrderInput{
		{ProductID: "p1", Amount: 1 << 62 / 1000},
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for huge amount, got %v", err)
	}
	if _, ok := ve.Fields["[0].amount"]; !ok {
		t.Fatalf("expected amount error on line 0, got %v", ve.Fields)
	}

	_, err = svc.CreateOrders(context.Background(), buyer, []ports.CreateOrderInput{
		{ProductID: "p1", Amount: 1},
		{ProductID: "p1", Amount: 2},
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for total above the maximum, got %v", err)
	}
	if _, ok := ve.Fields["[1].amount"]; !ok {
		t.Fatalf("expected amount error on line 1, got %v", ve.Fields)
	}
	for _, o := range repo.orders {
		if o.Price < 0 || o.Price > domain.MaxMoney {
			t.Fatalf("stored order with out-of-range price %s", o.Price)
		}
	}
}

func TestOrderService_CreateOrders_UnknownProduct(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, nil, sequentialIDs(), discardLogger)

	_, err := svc.CreateOrders(context.Background(), buyer, []ports.CreateOrderInput{{ProductID: "missing", Amount: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderService_TopProducts_CacheAside(t *testing.T) {
	repo := newStubOrderRepo(&domain.Product{ID: "p1", Name: "Widget"})
	cache := &stubTopCache{}
	svc := NewOrderService(repo, cache, nil, sequentialIDs(), discardLogger)

	if _, err := svc.TopProducts(context.Background()); err != nil {
		t.Fatalf("TopProducts returned error: %v", err)
	}
	if _, err := svc.TopProducts(context.Background()); err != nil {
		t.Fatalf("TopProducts returned error: %v", err)
	}
	if repo.topCalls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.topCalls)
	}

	analytics := NewAnalyticsService(cache, nil, discardLogger)
	if err := analytics.HandleOrderPlaced(context.Background(), ports.OrderPlaced{OrderID: "o1", Price: 100}); err != nil {
		t.Fatalf("HandleOrderPlaced returned error: %v", err)
	}
	if _, err := svc.TopProducts(context.Background()); err != nil {
		t.Fatalf("TopProducts returned error: %v", err)
	}
	if repo.topCalls != 2 {
		t.Fatalf("expected cache miss after invalidation, got %d calls", repo.topCalls)
	}
}

func TestOrderService_RecentOrdersIsBounded(t *testing.T) {
	repo := newStubOrderRepo(&domain.Product{ID: "p1", Name: "Widget", Price: 100})
	svc := NewOrderService(repo, nil, nil, sequentialIDs(), discardLogger)

	lines := make([]ports.CreateOrderInput, recentOrdersLimit+5)
	for i := range lines {
		lines[i] = ports.CreateOrderInput{ProductID: "p1", Amount: 1}
	}
	if _, err := svc.CreateOrders(context.Background(), buyer, lines); err != nil {
		t.Fatalf("CreateOrders returned error: %v", err)
	}

	recent, err := svc.RecentOrders(context.Background())
	if err != nil {
		t.Fatalf("RecentOrders returned error: %v", err)
	}
	if len(recent) != recentOrdersLimit {
		t.Fatalf("expected %d recent orders, got %d", recentOrdersLimit, len(recent))
	}

	all, err := svc.LastOrders(context.Background())
	if err != nil {
		t.Fatalf("LastOrders returned error: %v", err)
	}
	if len(all) != len(lines) {
		t.Fatalf("expected %d orders, got %d", len(lines), len(all))
	}
}
