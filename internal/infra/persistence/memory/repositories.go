package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type accountRepository struct {
	tx *tx
}

func (r *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	rec, ok := r.tx.state.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return rec.toDomain(), nil
}

func (r *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	id, ok := r.tx.state.emails[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return r.tx.state.accounts[id].toDomain(), nil
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	if account.Email == "" || account.PasswordHash == "" || !account.Role.IsValid() {
		return domainerrors.ErrInvalidInput.WithDetails("missing or invalid account information")
	}
	if _, taken := r.tx.state.emails[account.Email]; taken {
		return errors.WithStack(repository.ErrDuplicateEmail)
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = r.tx.now
	account.UpdatedAt = r.tx.now

	r.tx.state.accounts[account.ID] = newAccountRecord(account)
	r.tx.state.emails[account.Email] = account.ID

	return nil
}

func (r *accountRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	rec, ok := r.tx.state.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	rec.passwordHash = passwordHash
	rec.updatedAt = r.tx.now
	r.tx.state.accounts[id] = rec

	return nil
}

type shopProfileRepository struct {
	tx *tx
}

func (r *shopProfileRepository) Create(_ context.Context, profile *entity.ShopProfile) error {
	owner := profile.AccountID
	if _, ok := r.tx.state.accounts[owner]; !ok {
		return errors.Wrap(repository.ErrAccountNotFound, "shop profile owner")
	}
	if _, taken := r.tx.state.shopByAccount[owner]; taken {
		return errors.WithStack(repository.ErrShopProfileExists)
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = r.tx.now
	profile.UpdatedAt = r.tx.now

	r.tx.state.shops[profile.ID] = shopRecord{
		id:        profile.ID,
		shopName:  profile.ShopName,
		accountID: profile.AccountID,
		isDefault: profile.IsDefault,
		createdAt: profile.CreatedAt,
		updatedAt: profile.UpdatedAt,
	}
	r.tx.state.shopByAccount[owner] = profile.ID

	return nil
}

func (r *shopProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.ShopProfile, error) {
	rec, ok := r.tx.state.shops[id]
	if !ok {
		return nil, repository.ErrShopProfileNotFound
	}

	return r.withEmail(rec), nil
}

func (r *shopProfileRepository) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.ShopProfile, error) {
	id, ok := r.tx.state.shopByAccount[accountID]
	if !ok {
		return nil, repository.ErrShopProfileNotFound
	}

	return r.withEmail(r.tx.state.shops[id]), nil
}

// LockByID only checks existence: transactions are already serialized.
func (r *shopProfileRepository) LockByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tx.state.shops[id]; !ok {
		return repository.ErrShopProfileNotFound
	}

	return nil
}

func (r *shopProfileRepository) MarkDemoSeeded(_ context.Context, id uuid.UUID, at time.Time) error {
	rec, ok := r.tx.state.shops[id]
	if !ok {
		return repository.ErrShopProfileNotFound
	}
	rec.demoSeededAt = &at
	rec.updatedAt = r.tx.now
	r.tx.state.shops[id] = rec

	return nil
}

func (r *shopProfileRepository) withEmail(rec shopRecord) *entity.ShopProfile {
	return rec.toDomain(r.tx.state.accounts[rec.accountID].email)
}

type productRepository struct {
	tx *tx
}

func (r *productRepository) ListByOwner(_ context.Context, shopProfileID uuid.UUID) ([]*entity.Product, error) {
	records := make([]productRecord, 0)
	for _, rec := range r.tx.state.products {
		if rec.shopProfileID == shopProfileID {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b productRecord) int {
		return cmp.Compare(a.seq, b.seq)
	})

	products := make([]*entity.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toDomain())
	}

	return products, nil
}

func (r *productRepository) CountByOwner(_ context.Context, shopProfileID uuid.UUID) (int64, error) {
	var count int64
	for _, rec := range r.tx.state.products {
		if rec.shopProfileID == shopProfileID {
			count++
		}
	}

	return count, nil
}

func (r *productRepository) FindOwned(_ context.Context, shopProfileID, productID uuid.UUID) (*entity.Product, error) {
	rec, ok := r.owned(shopProfileID, productID)
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return rec.toDomain(), nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.CreateBatch(ctx, []*entity.Product{product})
}

func (r *productRepository) CreateBatch(_ context.Context, products []*entity.Product) error {
	for _, product := range products {
		if _, ok := r.tx.state.shops[product.ShopProfileID]; !ok {
			return errors.Wrap(repository.ErrShopProfileNotFound, "product owner")
		}
		if !product.Price.IsPositive() {
			return domainerrors.ErrInvalidPrice
		}
	}

	for _, product := range products {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		product.CreatedAt = r.tx.now
		product.UpdatedAt = r.tx.now

		r.tx.state.nextSeq++
		r.tx.state.products[product.ID] = productRecord{
			id:            product.ID,
			name:          product.Name,
			price:         product.Price,
			description:   product.Description,
			imageRef:      product.ImageRef,
			shopProfileID: product.ShopProfileID,
			seq:           r.tx.state.nextSeq,
			createdAt:     product.CreatedAt,
			updatedAt:     product.UpdatedAt,
		}
	}

	return nil
}

func (r *productRepository) UpdateOwned(_ context.Context, product *entity.Product) error {
	rec, ok := r.owned(product.ShopProfileID, product.ID)
	if !ok {
		return repository.ErrProductNotFound
	}
	if !product.Price.IsPositive() {
		return domainerrors.ErrInvalidPrice
	}

	rec.name = product.Name
	rec.price = product.Price
	rec.description = product.Description
	rec.imageRef = product.ImageRef
	rec.updatedAt = r.tx.now
	r.tx.state.products[rec.id] = rec

	return nil
}

func (r *productRepository) DeleteOwned(_ context.Context, shopProfileID, productID uuid.UUID) error {
	if _, ok := r.owned(shopProfileID, productID); !ok {
		return repository.ErrProductNotFound
	}
	delete(r.tx.state.products, productID)

	return nil
}

func (r *productRepository) owned(shopProfileID, productID uuid.UUID) (productRecord, bool) {
	rec, ok := r.tx.state.products[productID]
	if !ok || rec.shopProfileID != shopProfileID {
		return productRecord{}, false
	}

	return rec, true
}
