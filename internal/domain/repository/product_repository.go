package repository

import (
	"context"
	"errors"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product with the id is owned by the
// given shop profile. A foreign-owned product yields the same error.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists products. Every single-product operation is
// scoped by the owning shop profile.
type ProductRepository interface {
	// ListByOwner returns the owner's products ordered by creation time.
	ListByOwner(ctx context.Context, shopProfileID uuid.UUID) ([]*entity.Product, error)
	CountByOwner(ctx context.Context, shopProfileID uuid.UUID) (int64, error)
	FindOwned(ctx context.Context, shopProfileID, productID uuid.UUID) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []*entity.Product) error

	// UpdateOwned replaces name, price, description and image reference.
	UpdateOwned(ctx context.Context, product *entity.Product) error
	DeleteOwned(ctx context.Context, shopProfileID, productID uuid.UUID) error
}
