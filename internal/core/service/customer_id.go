package service

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

const customerIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewCustomerIDGenerator returns a generator of uppercase alphanumeric
// customer identifiers of domain.CustomerIDLength characters.
func NewCustomerIDGenerator() (func() string, error) {
	gen, err := nanoid.CustomASCII(customerIDAlphabet, domain.CustomerIDLength)
	if err != nil {
		return nil, fmt.Errorf("customer id generator: %w", err)
	}
	return gen, nil
}
