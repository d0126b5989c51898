// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered person. The role is fixed at registration and the
// password hash is the only field changed afterwards.
type Account struct {
	ID           uuid.UUID
	Email        string // Unique across all accounts, compared as stored.
	PasswordHash string
	FirstName    string
	LastName     string
	Birthday     *time.Time
	Address      *string
	Phone        string
	Role         Role
	IsDefault    bool // Set on demo accounts created by the seeder.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (a *Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}
