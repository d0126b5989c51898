package handler

import (
	"time"

	"shopfront/internal/domain/entity"

	"github.com/google/uuid"
)

// accountView is what pages may show of an account; never the password hash.
type accountView struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	FullName  string      `json:"fullName"`
	Role      entity.Role `json:"role"`
	Phone     string      `json:"phone"`
	Address   *string     `json:"address,omitempty"`
	Birthday  string      `json:"birthday,omitempty"`
	IsDefault bool        `json:"isDefault"`
}

func newAccountView(account *entity.Account) *accountView {
	view := &accountView{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		FullName:  account.FullName(),
		Role:      account.Role,
		Phone:     account.Phone,
		Address:   account.Address,
		IsDefault: account.IsDefault,
	}
	if account.Birthday != nil {
		view.Birthday = account.Birthday.Format(time.DateOnly)
	}

	return view
}

type shopView struct {
	ID       uuid.UUID `json:"id"`
	ShopName string    `json:"shopName"`
	Email    string    `json:"email"`
}

func newShopView(shop *entity.ShopProfile) *shopView {
	return &shopView{ID: shop.ID, ShopName: shop.ShopName, Email: shop.Email}
}

type productView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	ImageRef    string    `json:"imageRef"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProductView(product *entity.Product) *productView {
	return &productView{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price.StringFixed(entity.ProductPriceScale),
		Description: product.Description,
		ImageRef:    product.ImageRef,
		CreatedAt:   product.CreatedAt,
	}
}

func newProductViews(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}

	return views
}
