// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterAccountInput holds the fields shared by viewer and seller registration.
type RegisterAccountInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Birthday        *time.Time
	Address         *string
	Phone           string
}

// RegisterSellerInput adds the shop name to the account fields.
type RegisterSellerInput struct {
	RegisterAccountInput
	ShopName string
}

// LoginInput identifies the entry point through Role; an account of another
// role is reported as not found.
type LoginInput struct {
	Role     entity.Role
	Email    string
	Password string
}

// ResetPasswordInput defines the data required to replace a password by email.
type ResetPasswordInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// AccountUsecase defines the credential and role/profile operations.
type AccountUsecase interface {
	RegisterViewer(ctx context.Context, input *RegisterAccountInput) (*entity.Account, error)
	// RegisterSeller creates the admin account and its shop profile in one unit of work.
	RegisterSeller(ctx context.Context, input *RegisterSellerInput) (*entity.Principal, error)
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)
	Login(ctx context.Context, input *LoginInput) (*entity.Principal, error)
	// ResetPassword replaces the hash without re-authentication.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	// GetPrincipal reloads the account, and its shop when it owns one.
	GetPrincipal(ctx context.Context, accountID uuid.UUID) (*entity.Principal, error)
	// EnsureDemoAccounts creates the configured demo viewer and seller if missing.
	EnsureDemoAccounts(ctx context.Context) error
}
