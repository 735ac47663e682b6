package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Directory is the read-only product and promotion catalog the storefront
// consumes.
type Directory interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetPromoCodes(ctx context.Context) ([]domain.PromotionDefinition, error)
}
