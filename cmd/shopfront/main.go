package main

import (
	"context"
	"log/slog"
	"os"

	"shopfront/config"
	"shopfront/internal/delivery"
	"shopfront/internal/delivery/http"
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/router/handler"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/lifecycle"
	"shopfront/internal/domain/service"
	"shopfront/internal/infra/auth"
	logs "shopfront/internal/infra/log"
	"shopfront/internal/infra/persistence"
	"shopfront/internal/infra/spreadsheet"
	"shopfront/internal/infra/storage"
	"shopfront/internal/usecase"
	"shopfront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

type seedParams struct {
	fx.In
	fx.Lifecycle

	Logger   *slog.Logger
	Accounts usecase.AccountUsecase
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedDemoAccounts,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.NewTransactionManager,
		storage.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			fx.Annotate(
				auth.NewPasswordPolicy,
				fx.As(new(service.PasswordPolicy)),
			),
			auth.NewRememberTokenService,
			spreadsheet.NewProductSheetReader,
			session.NewManager,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewCatalogService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewAccessMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPages,
			handler.NewHomeHandler,
			handler.NewAuthHandler,
			handler.NewDashboardHandler,
			handler.NewProductHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedDemoAccounts runs once the store is migrated; a failure is logged and
// does not stop the service.
func seedDemoAccounts(params seedParams) {
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := params.Accounts.EnsureDemoAccounts(ctx); err != nil {
				params.Logger.Error("Failed to seed demo accounts", slog.Any("error", err))
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						params.Logger.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
