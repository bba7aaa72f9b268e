package repo

import (
	"context"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UpdateProfile(ctx context.Context, u models.User) (models.User, error)
	SetRole(ctx context.Context, id, role string) (models.User, error)
}
