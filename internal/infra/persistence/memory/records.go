package memory

import (
	"time"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Records are stored by value so callers never share memory with the store.

type accountRecord struct {
	id           uuid.UUID
	email        string
	passwordHash string
	firstName    string
	lastName     string
	birthday     *time.Time
	address      *string
	phone        string
	role         entity.Role
	isDefault    bool
	createdAt    time.Time
	updatedAt    time.Time
}

func newAccountRecord(a *entity.Account) accountRecord {
	return accountRecord{
		id:           a.ID,
		email:        a.Email,
		passwordHash: a.PasswordHash,
		firstName:    a.FirstName,
		lastName:     a.LastName,
		birthday:     copyTime(a.Birthday),
		address:      copyString(a.Address),
		phone:        a.Phone,
		role:         a.Role,
		isDefault:    a.IsDefault,
		createdAt:    a.CreatedAt,
		updatedAt:    a.UpdatedAt,
	}
}

func (r accountRecord) toDomain() *entity.Account {
	return &entity.Account{
		ID:           r.id,
		Email:        r.email,
		PasswordHash: r.passwordHash,
		FirstName:    r.firstName,
		LastName:     r.lastName,
		Birthday:     copyTime(r.birthday),
		Address:      copyString(r.address),
		Phone:        r.phone,
		Role:         r.role,
		IsDefault:    r.isDefault,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	}
}

type shopRecord struct {
	id           uuid.UUID
	shopName     string
	accountID    uuid.UUID
	isDefault    bool
	demoSeededAt *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func (r shopRecord) toDomain(ownerEmail string) *entity.ShopProfile {
	return &entity.ShopProfile{
		ID:           r.id,
		ShopName:     r.shopName,
		AccountID:    r.accountID,
		IsDefault:    r.isDefault,
		DemoSeededAt: copyTime(r.demoSeededAt),
		Email:        ownerEmail,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	}
}

type productRecord struct {
	id            uuid.UUID
	name          string
	price         decimal.Decimal
	description   string
	imageRef      string
	shopProfileID uuid.UUID
	seq           int64
	createdAt     time.Time
	updatedAt     time.Time
}

func (r productRecord) toDomain() *entity.Product {
	return &entity.Product{
		ID:            r.id,
		Name:          r.name,
		Price:         r.price,
		Description:   r.description,
		ImageRef:      r.imageRef,
		ShopProfileID: r.shopProfileID,
		CreatedAt:     r.createdAt,
		UpdatedAt:     r.updatedAt,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t

	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s

	return &v
}
