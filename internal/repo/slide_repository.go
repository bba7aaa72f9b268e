package repo

import (
	"context"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type SlideRepository interface {
	ListActive(ctx context.Context) ([]models.Slide, error)
	ListAll(ctx context.Context) ([]models.Slide, error)
	Create(ctx context.Context, s models.Slide) (models.Slide, error)
	Update(ctx context.Context, s models.Slide) (models.Slide, error)
	Delete(ctx context.Context, id string) error
}
