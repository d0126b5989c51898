// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when the unique email constraint rejects an insert.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository persists accounts.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail matches the email exactly as stored.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create inserts the account, filling in ID and timestamps when empty.
	// A unique violation on email yields ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}
