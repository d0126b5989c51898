package postgres

import (
	"context"

	"shopfront/internal/domain/repository"
	"shopfront/internal/errors"

	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one *gorm.DB transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewAccountRepository() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

func (f *gormRepositoryFactory) NewShopProfileRepository() repository.ShopProfileRepository {
	return NewShopProfileRepository(f.tx)
}

func (f *gormRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

// NewTransactionManager returns a TransactionManager backed by db.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn in one transaction. The transaction is rolled back when fn
// returns an error or panics; the panic is re-raised afterwards.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) (err error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Join(err, errors.Wrap(rbErr, "transaction rollback failed"))
		}

		return err
	}

	committed = true
	if err = tx.Commit().Error; err != nil {
		// a deferred constraint can still fire at commit time
		if ok, constraint := isUniqueConstraintViolation(err); ok {
			switch constraint {
			case constraintShopProfilesAccountID:
				return errors.WithStack(repository.ErrShopProfileExists)
			default:
				return errors.WithStack(repository.ErrDuplicateEmail)
			}
		}

		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
