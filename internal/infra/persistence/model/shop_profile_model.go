package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopProfileModel mirrors the 'shop_profiles' table. The owner's email is not
// stored here; it is joined from accounts when read.
type ShopProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopName  string    `gorm:"type:varchar(100);not null"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_shop_profiles_account_id"`
	IsDefault bool      `gorm:"not null;default:false"`
	// DemoSeededAt records the first dashboard visit that offered demo products.
	DemoSeededAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []ProductModel `gorm:"foreignKey:ShopProfileID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ShopProfileModel) TableName() string {
	return "shop_profiles"
}
