package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
	now  func() time.Time
}

var _ ports.ProductService = (*ProductService)(nil)

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log, now: time.Now}
}

// Create adds a product owned by the caller.
func (s *ProductService) Create(ctx context.Context, id domain.Identity, in ports.ProductInput) (*domain.Product, error) {
	name, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:      name,
		Price:     in.Price,
		OwnerID:   id.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("owner_id", id.UserID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Update changes name and price. Existing orders keep the price they were
// created with.
func (s *ProductService) Update(ctx context.Context, id domain.Identity, productID string, in ports.ProductInput) (*domain.Product, error) {
	name, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.CanBeModifiedBy(id) {
		return nil, domain.ErrForbidden
	}

	p.Name = name
	p.Price = in.Price
	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id domain.Identity, productID string) error {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.CanBeModifiedBy(id) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}

	s.log.Info().Str("product_id", productID).Str("user_id", id.UserID).Msg("product deleted")
	return nil
}

func validateProduct(in ports.ProductInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	fields := map[string]string{}
	switch {
	case name == "":
		fields["name"] = "this field may not be blank"
	case utf8.RuneCountInString(name) > domain.MaxProductNameLength:
		fields["name"] = "ensure this field has no more than 100 characters"
	}
	if in.Price < 0 || in.Price > domain.MaxMoney {
		fields["price"] = "must be between 0.00 and 99999999.99"
	}
	if len(fields) > 0 {
		return "", &domain.ValidationError{Fields: fields}
	}
	return name, nil
}
