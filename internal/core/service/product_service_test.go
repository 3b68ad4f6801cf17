package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	clone := *p
	clone.ID = "p" + strconv.Itoa(len(r.products)+1)
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return p, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func TestProductService_CreateSetsOwner(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), discardLogger)
	owner := domain.Identity{UserID: "u1", Role: domain.RoleUser}

	p, err := svc.Create(context.Background(), owner, ports.ProductInput{Name: " Lamp ", Price: domain.MustParseMoney("19.99")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.OwnerID != "u1" || p.Name != "Lamp" || p.Price.String() != "19.99" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestProductService_CreateValidation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), discardLogger)
	owner := domain.Identity{UserID: "u1"}

	_, err := svc.Create(context.Background(), owner, ports.ProductInput{Name: "", Price: -1})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["name"] == "" || ve.Fields["price"] == "" {
		t.Fatalf("expected name and price errors, got %v", ve.Fields)
	}
}

func TestProductService_OwnershipOnMutation(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)
	owner := domain.Identity{UserID: "u1", Role: domain.RoleUser}
	stranger := domain.Identity{UserID: "u2", Role: domain.RoleUser}
	manager := domain.Identity{UserID: "m1", Role: domain.RoleManager}

	p, _ := svc.Create(context.Background(), owner, ports.ProductInput{Name: "Lamp", Price: 100})

	if _, err := svc.Update(context.Background(), stranger, p.ID, ports.ProductInput{Name: "Hacked", Price: 1}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), stranger, p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, p.ID, ports.ProductInput{Name: "Desk Lamp", Price: 250})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "Desk Lamp" || updated.Price != 250 {
		t.Fatalf("unexpected product: %+v", updated)
	}

	if err := svc.Delete(context.Background(), manager, p.ID); err != nil {
		t.Fatalf("manager delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
