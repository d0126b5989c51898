package repository

import (
	"context"
	"errors"
	"time"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrShopProfileNotFound is returned when no shop profile matches the lookup.
	ErrShopProfileNotFound = errors.New("shop profile not found")
	// ErrShopProfileExists is returned when an account already owns a shop profile.
	ErrShopProfileExists = errors.New("shop profile already exists for account")
)

// ShopProfileRepository persists shop profiles. Lookups fill Email from the
// owning account.
type ShopProfileRepository interface {
	Create(ctx context.Context, profile *entity.ShopProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShopProfile, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.ShopProfile, error)

	// LockByID takes an exclusive row lock on the profile until the enclosing
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) error
	MarkDemoSeeded(ctx context.Context, id uuid.UUID, at time.Time) error
}
