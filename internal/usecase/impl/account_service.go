// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	policy    service.PasswordPolicy
	seed      config.SeedConfig
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Policy    service.PasswordPolicy
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	srv := &accountService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		policy:    params.Policy,
		logger:    params.Logger,
	}
	if params.Config != nil && params.Config.Seed != nil {
		srv.seed = *params.Config.Seed
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *accountService) RegisterViewer(ctx context.Context, input *usecase.RegisterAccountInput) (*entity.Account, error) {
	account, err := srv.prepareAccount(input, entity.RoleViewer)
	if err != nil {
		return nil, err
	}

	principal, err := srv.register(ctx, account, nil)
	if err != nil {
		return nil, err
	}

	return principal.Account, nil
}

func (srv *accountService) RegisterSeller(ctx context.Context, input *usecase.RegisterSellerInput) (*entity.Principal, error) {
	shopName := strings.TrimSpace(input.ShopName)
	if shopName == "" {
		return nil, domainerrors.ErrInvalidInput.WithDetails("Shop name is required.")
	}

	account, err := srv.prepareAccount(&input.RegisterAccountInput, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return srv.register(ctx, account, &entity.ShopProfile{ShopName: shopName})
}

// prepareAccount validates the input and hashes the password outside any transaction.
func (srv *accountService) prepareAccount(input *usecase.RegisterAccountInput, role entity.Role) (*entity.Account, error) {
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	switch {
	case email == "":
		return nil, domainerrors.ErrInvalidInput.WithDetails("Email is required.")
	case phone == "":
		return nil, domainerrors.ErrInvalidInput.WithDetails("Phone number is required.")
	case input.Password != input.ConfirmPassword:
		return nil, domainerrors.ErrPasswordMismatch
	}

	if err := srv.policy.Validate(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	return &entity.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Birthday:     input.Birthday,
		Address:      input.Address,
		Phone:        phone,
		Role:         role,
	}, nil
}

// register inserts the account, and the shop profile when one is given, in one
// unit of work. A duplicate found by the pre-check or by the unique constraint
// is reported as ErrDuplicateIdentity.
func (srv *accountService) register(ctx context.Context, account *entity.Account, shop *entity.ShopProfile) (*entity.Principal, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.NewAccountRepository()

		_, err := accountRepo.FindByEmail(ctx, account.Email)
		switch {
		case err == nil:
			return domainerrors.ErrDuplicateIdentity
		case !errors.Is(err, repository.ErrAccountNotFound):
			return errors.Wrap(err, "failed to check email")
		}

		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		if shop == nil {
			return nil
		}

		shop.AccountID = account.ID
		shop.IsDefault = account.IsDefault
		if err := repoFactory.NewShopProfileRepository().Create(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to create shop profile")
		}
		shop.Email = account.Email

		return nil
	})
	if err != nil {
		err = translateAccountError(err)
		if errors.Is(err, domainerrors.ErrDuplicateIdentity) {
			srv.log(ctx).Info("Registration rejected, email already registered", slog.String("role", account.Role.String()))
		} else {
			srv.log(ctx).Error("Failed to execute registration transaction", slog.String("role", account.Role.String()), slog.Any("error", err))
		}

		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.String("role", account.Role.String()), slog.Any("accountID", account.ID))

	return &entity.Principal{Account: account, Shop: shop}, nil
}

// Authenticate distinguishes an unknown email from a wrong password.
func (srv *accountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	account, err := srv.findByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(password, account.PasswordHash) {
		srv.log(ctx).Info("Password check failed", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredential
	}

	return account, nil
}

func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Principal, error) {
	account, err := srv.findByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if account.Role != input.Role {
		srv.log(ctx).Info("Login through another role's entry point", slog.Any("accountID", account.ID), slog.String("entry", input.Role.String()))

		return nil, domainerrors.ErrAccountNotFound
	}

	// bcrypt is CPU-bound, keep it outside the transaction.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Password check failed", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredential
	}

	principal, err := srv.GetPrincipal(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Account logged in", slog.Any("accountID", account.ID))

	return principal, nil
}

func (srv *accountService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return domainerrors.ErrInvalidInput.WithDetails("Please fill out all fields.")
	}
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}
	if err := srv.policy.Validate(input.Password); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password during reset")
	}

	var accountID uuid.UUID
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.NewAccountRepository()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to find account")
		}
		accountID = account.ID

		return accountRepo.UpdatePasswordHash(ctx, account.ID, hash)
	})
	if err != nil {
		return translateAccountError(err)
	}

	// No proof of ownership is asked for before the hash is replaced.
	srv.log(ctx).Warn("Password reset without re-authentication", slog.Any("accountID", accountID))

	return nil
}

func (srv *accountService) GetPrincipal(ctx context.Context, accountID uuid.UUID) (*entity.Principal, error) {
	principal := &entity.Principal{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.NewAccountRepository().FindByID(ctx, accountID)
		if err != nil {
			return errors.Wrap(err, "failed to find account by id")
		}
		principal.Account = account

		if !account.Role.OwnsShop() {
			return nil
		}

		shop, err := repoFactory.NewShopProfileRepository().FindByAccountID(ctx, account.ID)
		switch {
		case errors.Is(err, repository.ErrShopProfileNotFound):
			// The gate refuses an admin without a shop.
			srv.log(ctx).Error("Admin account has no shop profile", slog.Any("accountID", account.ID))
		case err != nil:
			return errors.Wrap(err, "failed to find shop profile")
		default:
			principal.Shop = shop
		}

		return nil
	})
	if err != nil {
		return nil, translateAccountError(err)
	}

	return principal, nil
}

// EnsureDemoAccounts is idempotent; an existing account with a demo email is left as is.
func (srv *accountService) EnsureDemoAccounts(ctx context.Context) error {
	if !srv.seed.DemoAccounts {
		return nil
	}
	if srv.seed.Password == "" {
		return errors.New("seed.password is required when seed.demoAccounts is set")
	}

	hash, err := srv.hasher.Hash(srv.seed.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash demo password")
	}

	demos := []struct {
		email string
		role  entity.Role
		shop  *entity.ShopProfile
	}{
		{email: srv.seed.ViewerEmail, role: entity.RoleViewer},
		{email: srv.seed.SellerEmail, role: entity.RoleAdmin, shop: &entity.ShopProfile{ShopName: srv.seed.SellerShopName}},
	}

	for _, demo := range demos {
		if demo.email == "" {
			continue
		}
		if demo.shop != nil && demo.shop.ShopName == "" {
			demo.shop.ShopName = "Demo Shop"
		}

		account := &entity.Account{
			Email:        demo.email,
			PasswordHash: hash,
			FirstName:    "Demo",
			LastName:     strings.ToUpper(demo.role.String()[:1]) + demo.role.String()[1:],
			Phone:        "+10000000000",
			Role:         demo.role,
			IsDefault:    true,
		}

		_, err := srv.register(ctx, account, demo.shop)
		switch {
		case errors.Is(err, domainerrors.ErrDuplicateIdentity):
			srv.log(ctx).Debug("Demo account already present", slog.String("role", demo.role.String()))
		case err != nil:
			return errors.Wrapf(err, "failed to seed demo %s account", demo.role)
		}
	}

	return nil
}

func (srv *accountService) findByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if email == "" {
		return nil, domainerrors.ErrAccountNotFound
	}

	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		account, err = repoFactory.NewAccountRepository().FindByEmail(ctx, email)

		return err
	})
	if err != nil {
		return nil, translateAccountError(err)
	}

	return account, nil
}

// translateAccountError maps repository sentinels onto the error taxonomy.
func translateAccountError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail), errors.Is(err, repository.ErrShopProfileExists):
		return domainerrors.ErrDuplicateIdentity
	case errors.Is(err, repository.ErrAccountNotFound):
		return domainerrors.ErrAccountNotFound
	case errors.Is(err, repository.ErrShopProfileNotFound):
		return domainerrors.ErrShopNotFound
	}

	if _, ok := domainerrors.AsAppError(err); ok {
		return err
	}

	return domainerrors.NewDatabaseExecuteError(err, "account storage failed")
}
