package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(email string, role entity.Role) *entity.Account {
	return &entity.Account{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "Account",
		Phone:        "+15550001111",
		Role:         role,
	}
}

func createSeller(t *testing.T, tm repository.TransactionManager, email string) *entity.ShopProfile {
	t.Helper()

	shop := &entity.ShopProfile{ShopName: "Shop " + email}
	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		account := newAccount(email, entity.RoleAdmin)
		if err := f.NewAccountRepository().Create(context.Background(), account); err != nil {
			return err
		}
		shop.AccountID = account.ID

		return f.NewShopProfileRepository().Create(context.Background(), shop)
	})
	require.NoError(t, err)

	return shop
}

func TestExecute_RollsBackOnError(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewAccountRepository().Create(ctx, newAccount("a@x.com", entity.RoleViewer)); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, err := f.NewAccountRepository().FindByEmail(ctx, "a@x.com")

		return err
	})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestExecute_RollsBackOnPanic(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.NewAccountRepository().Create(ctx, newAccount("p@x.com", entity.RoleViewer))
			panic("unexpected")
		})
	})

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		_, err := f.NewAccountRepository().FindByEmail(ctx, "p@x.com")

		return err
	})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_UniqueEmailUnderConcurrency(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()

	const writers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				return f.NewAccountRepository().Create(ctx, newAccount("race@x.com", entity.RoleViewer))
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, repository.ErrDuplicateEmail):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, dupes)
}

func TestAccountRepository_EmailIsCaseSensitive(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.NewAccountRepository()
		if err := repo.Create(ctx, newAccount("Case@x.com", entity.RoleViewer)); err != nil {
			return err
		}

		return repo.Create(ctx, newAccount("case@x.com", entity.RoleViewer))
	})
	assert.NoError(t, err)
}

func TestShopProfileRepository_OnePerAccountAndEmailReadThrough(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()
	shop := createSeller(t, tm, "s@x.com")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewShopProfileRepository().Create(ctx, &entity.ShopProfile{ShopName: "Second", AccountID: shop.AccountID})
	})
	assert.ErrorIs(t, err, repository.ErrShopProfileExists)

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.NewShopProfileRepository().FindByAccountID(ctx, shop.AccountID)
		if err != nil {
			return err
		}
		assert.Equal(t, shop.ID, found.ID)
		assert.Equal(t, "s@x.com", found.Email)

		return f.NewShopProfileRepository().LockByID(ctx, uuid.New())
	})
	assert.ErrorIs(t, err, repository.ErrShopProfileNotFound)

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewShopProfileRepository().Create(ctx, &entity.ShopProfile{ShopName: "Orphan", AccountID: uuid.New()})
	})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestProductRepository_OwnershipScoping(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()
	acme := createSeller(t, tm, "s@x.com")
	other := createSeller(t, tm, "t@x.com")

	products := []*entity.Product{
		{Name: "First", Price: decimal.RequireFromString("1.00"), ShopProfileID: acme.ID},
		{Name: "Second", Price: decimal.RequireFromString("2.00"), ShopProfileID: acme.ID},
		{Name: "Third", Price: decimal.RequireFromString("3.00"), ShopProfileID: acme.ID},
	}
	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewProductRepository().CreateBatch(ctx, products)
	}))

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.NewProductRepository()

		listed, err := repo.ListByOwner(ctx, acme.ID)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "First", listed[0].Name)
		assert.Equal(t, "Third", listed[2].Name)

		foreign, err := repo.ListByOwner(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, foreign)

		_, err = repo.FindOwned(ctx, other.ID, products[0].ID)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)

		moved := *products[0]
		moved.ShopProfileID = other.ID
		assert.ErrorIs(t, repo.UpdateOwned(ctx, &moved), repository.ErrProductNotFound)
		assert.ErrorIs(t, repo.DeleteOwned(ctx, other.ID, products[0].ID), repository.ErrProductNotFound)

		count, err := repo.CountByOwner(ctx, acme.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		return repo.DeleteOwned(ctx, acme.ID, products[0].ID)
	}))
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewAccountRepository().Create(ctx, newAccount("copy@x.com", entity.RoleViewer))
	}))

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.NewAccountRepository().FindByEmail(ctx, "copy@x.com")
		require.NoError(t, err)
		found.PasswordHash = "tampered"

		again, err := f.NewAccountRepository().FindByEmail(ctx, "copy@x.com")
		require.NoError(t, err)
		assert.Equal(t, "hash", again.PasswordHash)

		return nil
	}))
}

func TestShopProfileRepository_MarkDemoSeeded(t *testing.T) {
	tm := NewTransactionManager(NewStore())
	ctx := context.Background()
	shop := createSeller(t, tm, "s@x.com")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewShopProfileRepository().MarkDemoSeeded(ctx, shop.ID, at)
	}))

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.NewShopProfileRepository().FindByID(ctx, shop.ID)
		require.NoError(t, err)
		require.NotNil(t, found.DemoSeededAt)
		assert.Equal(t, at, *found.DemoSeededAt)

		return f.NewShopProfileRepository().MarkDemoSeeded(ctx, uuid.New(), at)
	})
	assert.ErrorIs(t, err, repository.ErrShopProfileNotFound)
}
