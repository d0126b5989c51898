// Package persistence selects the repository driver named in the config.
package persistence

import (
	"log/slog"

	"shopfront/config"
	"shopfront/internal/domain/repository"
	"shopfront/internal/errors"
	"shopfront/internal/infra/persistence/memory"
	"shopfront/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the dependencies needed to build the transaction manager
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewTransactionManager builds the TransactionManager for storage.driver.
func NewTransactionManager(params Params) (repository.TransactionManager, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return memory.NewTransactionManager(memory.NewStore()), nil
	default:
		return nil, errors.Errorf("unsupported storage driver: %q", params.Config.Storage.Driver)
	}
}
