// Package memory is an in-process repository driver. Transactions are
// serialized and work on a copy of the state that replaces the committed
// state only when the unit of work succeeds.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"shopfront/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds the committed state shared by every transaction.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

type state struct {
	accounts      map[uuid.UUID]accountRecord
	emails        map[string]uuid.UUID // unique index on email
	shops         map[uuid.UUID]shopRecord
	shopByAccount map[uuid.UUID]uuid.UUID // unique index on shop owner
	products      map[uuid.UUID]productRecord
	nextSeq       int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		state: &state{
			accounts:      map[uuid.UUID]accountRecord{},
			emails:        map[string]uuid.UUID{},
			shops:         map[uuid.UUID]shopRecord{},
			shopByAccount: map[uuid.UUID]uuid.UUID{},
			products:      map[uuid.UUID]productRecord{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *state) clone() *state {
	return &state{
		accounts:      maps.Clone(s.accounts),
		emails:        maps.Clone(s.emails),
		shops:         maps.Clone(s.shops),
		shopByAccount: maps.Clone(s.shopByAccount),
		products:      maps.Clone(s.products),
		nextSeq:       s.nextSeq,
	}
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager over store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	tx *tx
}

// tx is the working copy of one unit of work.
type tx struct {
	state *state
	now   time.Time
}

func (f *repositoryFactory) NewAccountRepository() repository.AccountRepository {
	return &accountRepository{tx: f.tx}
}

func (f *repositoryFactory) NewShopProfileRepository() repository.ShopProfileRepository {
	return &shopProfileRepository{tx: f.tx}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{tx: f.tx}
}

// Execute serializes units of work. The working copy is discarded when fn
// returns an error or panics.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	work := &tx{state: tm.store.state.clone(), now: tm.store.now()}
	if err := fn(&repositoryFactory{tx: work}); err != nil {
		return err
	}

	tm.store.state = work.state

	return nil
}
