package usecase

import (
	"context"
	"io"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImageUpload is an optional file sent with a product form.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductInput carries the editable product fields. A nil Image keeps the
// current image on update and selects the placeholder on create.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Image       *ImageUpload
}

// ParsePrice reads a decimal price as typed into a form.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, ok := entity.ParsePrice(raw)
	if !ok {
		return decimal.Zero, domainerrors.ErrInvalidPrice.WithDetails("Price must be a number such as 12.50.")
	}

	return price, nil
}

// CatalogUsecase defines the ownership-scoped product operations. Every
// lookup by product id also matches the owning shop profile, so a product of
// another shop is reported as not found.
type CatalogUsecase interface {
	// ListForOwner seeds the demo products on the first visit of an empty shop.
	ListForOwner(ctx context.Context, shopProfileID uuid.UUID) ([]*entity.Product, error)
	GetProduct(ctx context.Context, shopProfileID, productID uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, shopProfileID uuid.UUID, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, shopProfileID, productID uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, shopProfileID, productID uuid.UUID) error
	// ImportProducts adds every row of the sheet or none of them.
	ImportProducts(ctx context.Context, shopProfileID uuid.UUID, sheet io.Reader) ([]*entity.Product, error)
}
