package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/auth"
	"shopfront/internal/infra/persistence/memory"
	"shopfront/internal/infra/persistence/postgres"
	"shopfront/internal/infra/persistence/sqltest"
	"shopfront/internal/infra/spreadsheet"
	"shopfront/internal/infra/storage"
	"shopfront/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Catalog: &config.CatalogConfig{AutoSeed: true},
		Upload: &config.UploadConfig{
			PublicPath:        "/media",
			AllowedExtensions: []string{"jpg", "jpeg", "png", "webp"},
			MaxImageSize:      1 << 20,
			DefaultImage:      "/static/img/placeholder.png",
		},
		Seed: &config.SeedConfig{
			DemoAccounts:   true,
			ViewerEmail:    "viewer@example.com",
			SellerEmail:    "seller@example.com",
			SellerShopName: "Demo Shop",
			Password:       "demo-password",
		},
	}
}

// fixtures wires both services on one in-memory store.
type fixtures struct {
	cfg       *config.Config
	txManager repository.TransactionManager
	accounts  usecase.AccountUsecase
	catalog   usecase.CatalogUsecase
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	return newFixturesWithTx(t, newTestConfig(), memory.NewTransactionManager(memory.NewStore()))
}

// forEachDriver runs the test once on the in-memory store and once on the
// gorm repositories over SQLite.
func forEachDriver(t *testing.T, run func(t *testing.T, f *fixtures)) {
	t.Helper()

	drivers := []struct {
		name string
		open func(t *testing.T) repository.TransactionManager
	}{
		{name: "memory", open: func(*testing.T) repository.TransactionManager {
			return memory.NewTransactionManager(memory.NewStore())
		}},
		{name: "gorm", open: func(t *testing.T) repository.TransactionManager {
			return postgres.NewTransactionManager(sqltest.Open(t))
		}},
	}

	for _, driver := range drivers {
		t.Run(driver.name, func(t *testing.T) {
			run(t, newFixturesWithTx(t, newTestConfig(), driver.open(t)))
		})
	}
}

func newFixturesWithTx(t *testing.T, cfg *config.Config, txManager repository.TransactionManager) *fixtures {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	logger := newDiscardLogger()

	return &fixtures{
		cfg:       cfg,
		txManager: txManager,
		accounts: NewAccountService(AccountServiceParams{
			TxManager: txManager,
			Hasher:    auth.NewBcryptHasher(cfg),
			Policy:    auth.NewPasswordPolicy(cfg),
			Config:    cfg,
			Logger:    logger,
		}),
		catalog: NewCatalogService(CatalogServiceParams{
			TxManager: txManager,
			Images:    storage.NewBlobImageStore(bucket, cfg.Upload),
			Sheets:    spreadsheet.NewProductSheetReader(),
			Config:    cfg,
			Logger:    logger,
		}),
	}
}

func viewerInput(email, password string) *usecase.RegisterAccountInput {
	return &usecase.RegisterAccountInput{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Phone:           "+639171234567",
	}
}

func sellerInput(email, password, shopName string) *usecase.RegisterSellerInput {
	return &usecase.RegisterSellerInput{
		RegisterAccountInput: *viewerInput(email, password),
		ShopName:             shopName,
	}
}

func (f *fixtures) registerSeller(t *testing.T, email, shopName string) *entity.Principal {
	t.Helper()

	principal, err := f.accounts.RegisterSeller(context.Background(), sellerInput(email, "pw", shopName))
	require.NoError(t, err)
	require.NotNil(t, principal.Shop)

	return principal
}

// mockHasher is a testify double for service.PasswordHasher.
type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}
