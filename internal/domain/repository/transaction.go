package repository

import "context"

// TransactionManager runs a unit of work inside one storage transaction.
// The use case layer depends on it instead of a concrete driver.
type TransactionManager interface {
	// Execute runs fn within a transaction. If fn returns an error or panics the
	// transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	NewAccountRepository() AccountRepository
	NewShopProfileRepository() ShopProfileRepository
	NewProductRepository() ProductRepository
}
