package postgres

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a ProductRepository bound to db, which may be a transaction.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) ListByOwner(ctx context.Context, shopProfileID uuid.UUID) ([]*entity.Product, error) {
	var rows []model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("shop_profile_id = ?", shopProfileID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toProductDomain(&rows[i]))
	}

	return products, nil
}

func (repo *productRepository) CountByOwner(ctx context.Context, shopProfileID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("shop_profile_id = ?", shopProfileID).
		Count(&count).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count products")
	}

	return count, nil
}

// FindOwned combines the existence and ownership checks in one lookup.
func (repo *productRepository) FindOwned(ctx context.Context, shopProfileID, productID uuid.UUID) (*entity.Product, error) {
	var row model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND shop_profile_id = ?", productID, shopProfileID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product")
	}

	return toProductDomain(&row), nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return repo.CreateBatch(ctx, []*entity.Product{product})
}

func (repo *productRepository) CreateBatch(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	// Spread creation times so a batch keeps its order when listed.
	now := time.Now().UTC()
	rows := make([]*model.ProductModel, 0, len(products))
	for i, product := range products {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		row := fromProductDomain(product)
		row.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		row.UpdatedAt = row.CreatedAt
		rows = append(rows, row)
	}

	if err := repo.db.WithContext(ctx).Create(rows).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrShopProfileNotFound, "product owner")
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithDetails("missing or invalid product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create products")
	}

	for i, row := range rows {
		products[i].CreatedAt = row.CreatedAt
		products[i].UpdatedAt = row.UpdatedAt
	}

	return nil
}

func (repo *productRepository) UpdateOwned(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND shop_profile_id = ?", product.ID, product.ShopProfileID).
		Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
			"image_ref":   product.ImageRef,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidPrice
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) DeleteOwned(ctx context.Context, shopProfileID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND shop_profile_id = ?", productID, shopProfileID).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		Name:          data.Name,
		Price:         data.Price,
		Description:   data.Description,
		ImageRef:      data.ImageRef,
		ShopProfileID: data.ShopProfileID,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		Name:          data.Name,
		Price:         data.Price,
		Description:   data.Description,
		ImageRef:      data.ImageRef,
		ShopProfileID: data.ShopProfileID,
	}
}
