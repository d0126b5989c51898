package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_products_price_positive,price > 0"`
	Description   string          `gorm:"type:text;not null"`
	ImageRef      string          `gorm:"type:varchar(255);not null"`
	ShopProfileID uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_shop_profile_created,priority:1"`
	CreatedAt     time.Time       `gorm:"index:idx_products_shop_profile_created,priority:2"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// All lists every model in dependency order for migrations.
func All() []any {
	return []any{&AccountModel{}, &ShopProfileModel{}, &ProductModel{}}
}
