package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShopProfile is the seller extension of an admin Account. Exactly one exists
// per admin account, created in the same unit of work as the account.
type ShopProfile struct {
	ID        uuid.UUID
	ShopName  string
	AccountID uuid.UUID
	IsDefault bool
	// DemoSeededAt is set once the demo products were offered to the shop;
	// deleting them later never brings them back.
	DemoSeededAt *time.Time
	// Email is read through the owning account and never stored on the profile.
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
