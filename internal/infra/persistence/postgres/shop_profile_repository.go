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
	"gorm.io/gorm/clause"
)

type shopProfileRepository struct {
	db *gorm.DB
}

// shopProfileRow is a shop profile joined with its owner's email.
type shopProfileRow struct {
	ID         uuid.UUID
	ShopName   string
	AccountID  uuid.UUID
	IsDefault    bool
	DemoSeededAt *time.Time
	OwnerEmail   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewShopProfileRepository returns a ShopProfileRepository bound to db, which may be a transaction.
func NewShopProfileRepository(db *gorm.DB) repository.ShopProfileRepository {
	return &shopProfileRepository{db: db}
}

func (repo *shopProfileRepository) Create(ctx context.Context, profile *entity.ShopProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	row := &model.ShopProfileModel{
		ID:        profile.ID,
		ShopName:  profile.ShopName,
		AccountID: profile.AccountID,
		IsDefault: profile.IsDefault,
	}

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		if ok, constraint := isUniqueConstraintViolation(err); ok && (constraint == "" || constraint == constraintShopProfilesAccountID) {
			return errors.WithStack(repository.ErrShopProfileExists)
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrAccountNotFound, "shop profile owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop profile")
	}

	profile.CreatedAt = row.CreatedAt
	profile.UpdatedAt = row.UpdatedAt

	return nil
}

func (repo *shopProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShopProfile, error) {
	return repo.findOne(ctx, "shop_profiles.id = ?", id)
}

func (repo *shopProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.ShopProfile, error) {
	return repo.findOne(ctx, "shop_profiles.account_id = ?", accountID)
}

func (repo *shopProfileRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	var row model.ShopProfileModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrShopProfileNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to lock shop profile")
	}

	return nil
}

func (repo *shopProfileRepository) MarkDemoSeeded(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShopProfileModel{}).
		Where("id = ?", id).
		Update("demo_seeded_at", at)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark shop profile seeded")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopProfileNotFound
	}

	return nil
}

// findOne reads the owner's email through a join instead of a stored copy.
func (repo *shopProfileRepository) findOne(ctx context.Context, query string, arg any) (*entity.ShopProfile, error) {
	var rows []shopProfileRow
	err := repo.db.WithContext(ctx).
		Table("shop_profiles").
		Select("shop_profiles.id, shop_profiles.shop_name, shop_profiles.account_id, shop_profiles.is_default, shop_profiles.demo_seeded_at, " +
			"shop_profiles.created_at, shop_profiles.updated_at, accounts.email AS owner_email").
		Joins("JOIN accounts ON accounts.id = shop_profiles.account_id").
		Where(query, arg).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find shop profile")
	}
	if len(rows) == 0 {
		return nil, repository.ErrShopProfileNotFound
	}

	row := rows[0]

	return &entity.ShopProfile{
		ID:        row.ID,
		ShopName:  row.ShopName,
		AccountID: row.AccountID,
		IsDefault:    row.IsDefault,
		DemoSeededAt: row.DemoSeededAt,
		Email:        row.OwnerEmail,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
