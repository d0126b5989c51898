package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"shopfront/config"
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

// demoProduct is one entry of the fixed set seeded into an empty shop.
type demoProduct struct {
	name        string
	price       string
	description string
}

var demoProducts = []demoProduct{
	{name: "Classic Tee", price: "19.99", description: "Soft cotton t-shirt in a relaxed fit."},
	{name: "Canvas Tote", price: "14.50", description: "Sturdy everyday tote bag with inner pocket."},
	{name: "Ceramic Mug", price: "9.99", description: "Stoneware mug, holds 350 ml."},
}

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager  repository.TransactionManager
	images     service.ImageStore
	sheets     service.ProductSheetReader
	autoSeed   bool
	seedFlight singleflight.Group
	logger     *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Images    service.ImageStore
	Sheets    service.ProductSheetReader
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		images:    params.Images,
		sheets:    params.Sheets,
		autoSeed:  params.Config != nil && params.Config.Catalog != nil && params.Config.Catalog.AutoSeed,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) ListForOwner(ctx context.Context, shopProfileID uuid.UUID) ([]*entity.Product, error) {
	products, firstVisit, err := srv.list(ctx, shopProfileID)
	if err != nil || !firstVisit {
		return products, err
	}

	// Concurrent first visits in this process share one seeding run; the row
	// lock inside seed covers other processes.
	_, err, _ = srv.seedFlight.Do(shopProfileID.String(), func() (any, error) {
		return nil, srv.seed(context.WithoutCancel(ctx), shopProfileID)
	})
	if err != nil {
		return nil, err
	}

	products, _, err = srv.list(ctx, shopProfileID)

	return products, err
}

// list also reports whether the shop is still waiting for its first seeding
// decision.
func (srv *catalogService) list(ctx context.Context, shopProfileID uuid.UUID) ([]*entity.Product, bool, error) {
	var (
		products   []*entity.Product
		firstVisit bool
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if srv.autoSeed {
			shop, err := repoFactory.NewShopProfileRepository().FindByID(ctx, shopProfileID)
			if err != nil {
				return err
			}
			firstVisit = shop.DemoSeededAt == nil
		}

		var err error
		products, err = repoFactory.NewProductRepository().ListByOwner(ctx, shopProfileID)

		return err
	})
	if err != nil {
		return nil, false, srv.translate(ctx, err)
	}

	return products, firstVisit, nil
}

// seed runs at most once per shop. It inserts the demo set only if the shop
// has no products when its first visit is recorded under the row lock.
func (srv *catalogService) seed(ctx context.Context, shopProfileID uuid.UUID) error {
	seeded := 0
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.NewShopProfileRepository()
		if err := shopRepo.LockByID(ctx, shopProfileID); err != nil {
			return errors.Wrap(err, "failed to lock shop profile")
		}
		shop, err := shopRepo.FindByID(ctx, shopProfileID)
		if err != nil {
			return errors.Wrap(err, "failed to read shop profile")
		}
		if shop.DemoSeededAt != nil {
			return nil
		}
		if err := shopRepo.MarkDemoSeeded(ctx, shopProfileID, time.Now().UTC()); err != nil {
			return errors.Wrap(err, "failed to mark shop profile seeded")
		}

		productRepo := repoFactory.NewProductRepository()
		count, err := productRepo.CountByOwner(ctx, shopProfileID)
		if err != nil {
			return errors.Wrap(err, "failed to count products")
		}
		if count > 0 {
			return nil
		}

		products := make([]*entity.Product, 0, len(demoProducts))
		for _, demo := range demoProducts {
			products = append(products, &entity.Product{
				Name:          demo.name,
				Price:         decimal.RequireFromString(demo.price),
				Description:   demo.description,
				ImageRef:      srv.images.DefaultRef(),
				ShopProfileID: shopProfileID,
			})
		}
		seeded = len(products)

		return productRepo.CreateBatch(ctx, products)
	})
	if err != nil {
		return srv.translate(ctx, err)
	}

	if seeded > 0 {
		srv.log(ctx).Info("Seeded demo products", slog.Any("shopProfileID", shopProfileID), slog.Int("count", seeded))
	}

	return nil
}

func (srv *catalogService) GetProduct(ctx context.Context, shopProfileID, productID uuid.UUID) (*entity.Product, error) {
	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		product, err = repoFactory.NewProductRepository().FindOwned(ctx, shopProfileID, productID)

		return err
	})
	if err != nil {
		return nil, srv.translate(ctx, err)
	}

	return product, nil
}

func (srv *catalogService) CreateProduct(ctx context.Context, shopProfileID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	product, err := validateProduct(input.Name, input.Price, input.Description)
	if err != nil {
		return nil, err
	}
	product.ShopProfileID = shopProfileID
	product.ImageRef = srv.images.DefaultRef()

	if input.Image != nil {
		if product.ImageRef, err = srv.images.Save(ctx, input.Image.Filename, input.Image.Content); err != nil {
			return nil, err
		}
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProductRepository().Create(ctx, product)
	})
	if err != nil {
		return nil, srv.translate(ctx, err)
	}

	srv.log(ctx).Info("Product created", slog.Any("shopProfileID", shopProfileID), slog.Any("productID", product.ID))

	return product, nil
}

// UpdateProduct replaces every field; the image only when a new one is sent.
func (srv *catalogService) UpdateProduct(
	ctx context.Context,
	shopProfileID, productID uuid.UUID,
	input *usecase.ProductInput,
) (*entity.Product, error) {
	changes, err := validateProduct(input.Name, input.Price, input.Description)
	if err != nil {
		return nil, err
	}

	var product *entity.Product
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		var err error
		product, err = productRepo.FindOwned(ctx, shopProfileID, productID)
		if err != nil {
			return err
		}

		product.Name = changes.Name
		product.Price = changes.Price
		product.Description = changes.Description
		if input.Image != nil {
			if product.ImageRef, err = srv.images.Save(ctx, input.Image.Filename, input.Image.Content); err != nil {
				return err
			}
		}

		return productRepo.UpdateOwned(ctx, product)
	})
	if err != nil {
		return nil, srv.translate(ctx, err)
	}

	srv.log(ctx).Info("Product updated", slog.Any("shopProfileID", shopProfileID), slog.Any("productID", productID))

	return product, nil
}

// DeleteProduct leaves the stored image in place.
func (srv *catalogService) DeleteProduct(ctx context.Context, shopProfileID, productID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProductRepository().DeleteOwned(ctx, shopProfileID, productID)
	})
	if err != nil {
		return srv.translate(ctx, err)
	}

	srv.log(ctx).Info("Product deleted", slog.Any("shopProfileID", shopProfileID), slog.Any("productID", productID))

	return nil
}

func (srv *catalogService) ImportProducts(ctx context.Context, shopProfileID uuid.UUID, sheet io.Reader) ([]*entity.Product, error) {
	rows, err := srv.sheets.Read(sheet)
	if err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		product, err := validateProduct(row.Name, row.Price, row.Description)
		if err != nil {
			return nil, rowError(row.Line, err)
		}

		product.ShopProfileID = shopProfileID
		product.ImageRef = srv.images.DefaultRef()
		if row.ImageRef != "" {
			if !isImageReference(row.ImageRef) {
				return nil, domainerrors.ErrInvalidSheet.WithDetails(
					fmt.Sprintf("Row %d: image must be an http(s) URL or an absolute path.", row.Line))
			}
			product.ImageRef = row.ImageRef
		}
		products = append(products, product)
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProductRepository().CreateBatch(ctx, products)
	})
	if err != nil {
		return nil, srv.translate(ctx, err)
	}

	srv.log(ctx).Info("Products imported", slog.Any("shopProfileID", shopProfileID), slog.Int("count", len(products)))

	return products, nil
}

// validateProduct runs before any write and returns the normalized fields.
func validateProduct(name string, price decimal.Decimal, description string) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	switch exp := price.Exponent(); {
	case exp > 8:
		return nil, domainerrors.ErrInvalidPrice.WithDetails("Price is too large.")
	case exp < -entity.ProductPriceMaxExponent:
		return nil, domainerrors.ErrInvalidPrice
	}
	price = price.Round(entity.ProductPriceScale)

	switch {
	case name == "":
		return nil, domainerrors.ErrInvalidInput.WithDetails("Name is required.")
	case utf8.RuneCountInString(name) > entity.ProductNameMaxLength:
		return nil, domainerrors.ErrInvalidInput.WithDetails(
			fmt.Sprintf("Name must be at most %d characters.", entity.ProductNameMaxLength))
	case description == "":
		return nil, domainerrors.ErrInvalidInput.WithDetails("Description is required.")
	case !price.IsPositive():
		return nil, domainerrors.ErrInvalidPrice
	case price.GreaterThanOrEqual(entity.ProductPriceCeiling):
		return nil, domainerrors.ErrInvalidPrice.WithDetails("Price is too large.")
	}

	return &entity.Product{Name: name, Price: price, Description: description}, nil
}

func rowError(line int, err error) error {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok {
		return err
	}

	reason := appErr.Message()
	if appErr.Details() != "" {
		reason = appErr.Details()
	}

	return domainerrors.ErrInvalidSheet.WithDetails(fmt.Sprintf("Row %d: %s", line, reason))
}

func isImageReference(ref string) bool {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return true
	}

	u, err := url.Parse(ref)

	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (srv *catalogService) translate(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case errors.Is(err, repository.ErrShopProfileNotFound):
		return domainerrors.ErrShopNotFound
	}

	if _, ok := domainerrors.AsAppError(err); ok {
		return err
	}

	srv.log(ctx).Error("Catalog storage failed", slog.Any("error", err))

	return domainerrors.NewDatabaseExecuteError(err, "catalog storage failed")
}
