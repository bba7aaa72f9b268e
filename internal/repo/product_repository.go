package repo

import (
	"context"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetBySlug(ctx context.Context, slug string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	PriceRange(ctx context.Context) (models.PriceRange, error)
	AdjustStock(ctx context.Context, id string, delta int) (models.Product, error)
}
