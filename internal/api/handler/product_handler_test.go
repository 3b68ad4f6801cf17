package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type stubProductService struct {
	gotID        domain.Identity
	gotProductID string
	gotInput     ports.ProductInput
}

func (s *stubProductService) Create(_ context.Context, id domain.Identity, in ports.ProductInput) (*domain.Product, error) {
	s.gotID, s.gotInput = id, in
	return &domain.Product{ID: "p-1", Name: in.Name, Price: in.Price, OwnerID: id.UserID}, nil
}

func (s *stubProductService) Get(_ context.Context, productID string) (*domain.Product, error) {
	if productID != "p-1" {
		return nil, domain.ErrProductNotFound
	}
	return &domain.Product{ID: "p-1", Name: "Widget"}, nil
}

func (s *stubProductService) List(context.Context) ([]*domain.Product, error) {
	return []*domain.Product{{ID: "p-1", Name: "Widget", Price: domain.MustParseMoney("1.00")}}, nil
}

func (s *stubProductService) Update(_ context.Context, id domain.Identity, productID string, in ports.ProductInput) (*domain.Product, error) {
	s.gotID, s.gotProductID, s.gotInput = id, productID, in
	return &domain.Product{ID: productID, Name: in.Name, Price: in.Price}, nil
}

func (s *stubProductService) Delete(_ context.Context, id domain.Identity, productID string) error {
	s.gotID, s.gotProductID = id, productID
	return nil
}

func TestProductHandler_Create(t *testing.T) {
	stub := &stubProductService{}
	c, rec := newContext(t, http.MethodPost, "/products", `{"name":"Widget","price":"12.50"}`, &userID)

	if err := NewProductHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.gotID != userID || stub.gotInput.Price.String() != "12.50" {
		t.Fatalf("unexpected call: %+v %+v", stub.gotID, stub.gotInput)
	}
	if !strings.Contains(rec.Body.String(), `"price":"12.50"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProductHandler_Create_NumericPrice(t *testing.T) {
	stub := &stubProductService{}
	c, _ := newContext(t, http.MethodPost, "/products", `{"name":"Widget","price":3.5}`, &userID)

	if err := NewProductHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.gotInput.Price.String() != "3.50" {
		t.Fatalf("price = %s", stub.gotInput.Price)
	}
}

func TestProductHandler_Create_MissingFields(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/products", `{"name":"Widget"}`, &userID)
	requireFieldError(t, NewProductHandler(&stubProductService{}).Create(c), "price")

	c, _ = newContext(t, http.MethodPost, "/products", `{"price":"1.00"}`, &userID)
	requireFieldError(t, NewProductHandler(&stubProductService{}).Create(c), "name")
}

func TestProductHandler_UpdateAndDeleteForwardPathID(t *testing.T) {
	stub := &stubProductService{}
	h := NewProductHandler(stub)

	c, _ := newContext(t, http.MethodPut, "/products/p-9", `{"name":"New","price":"2.00"}`, &managerID)
	c.SetParamNames("id")
	c.SetParamValues("p-9")
	if err := h.Update(c); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if stub.gotProductID != "p-9" || stub.gotID != managerID {
		t.Fatalf("unexpected update call: %q %+v", stub.gotProductID, stub.gotID)
	}

	c, rec := newContext(t, http.MethodDelete, "/products/p-7", "", &managerID)
	c.SetParamNames("id")
	c.SetParamValues("p-7")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.gotProductID != "p-7" {
		t.Fatalf("unexpected delete: %d %q", rec.Code, stub.gotProductID)
	}
}
