// Package model holds the GORM persistence models and their table layout.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_accounts_email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FirstName    string     `gorm:"type:varchar(100);not null"`
	LastName     string     `gorm:"type:varchar(100);not null"`
	Birthday     *time.Time `gorm:"type:date"`
	Address      *string    `gorm:"type:varchar(255)"`
	Phone        string     `gorm:"type:varchar(20);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:viewer;check:chk_accounts_role,role IN ('viewer','admin')"`
	IsDefault    bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ShopProfile *ShopProfileModel `gorm:"foreignKey:AccountID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
