package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/session"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const addProductPath = "/product/add"

// errMissingShop means an admin principal was loaded without its shop profile.
var errMissingShop = errors.New("admin account has no shop profile")

type productForm struct {
	Name        string `form:"name" validate:"required,max=100"`
	Price       string `form:"price" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func (f *productForm) keep() map[string]string {
	return map[string]string{"name": f.Name, "price": f.Price, "description": f.Description}
}

// ProductHandler serves the seller's product pages. Every product is looked
// up through the signed-in seller's shop.
type ProductHandler struct {
	pages   *Pages
	catalog usecase.CatalogUsecase
	images  service.ImageStore
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(pages *Pages, catalog usecase.CatalogUsecase, images service.ImageStore) *ProductHandler {
	return &ProductHandler{pages: pages, catalog: catalog, images: images}
}

// AddPage shows the empty product form.
func (h *ProductHandler) AddPage(c echo.Context) error {
	return h.pages.render(c, "product/add", h.uploadRules(), nil)
}

// Add creates a product from the form and its optional image.
func (h *ProductHandler) Add(c echo.Context) error {
	shopID, err := shopOf(c)
	if err != nil {
		return err
	}

	form := new(productForm)
	input, closeImage, err := h.readProduct(c, form)
	if err != nil {
		return h.pages.fail(c, err, addProductPath, form.keep())
	}
	defer closeImage()

	if _, err := h.catalog.CreateProduct(c.Request().Context(), shopID, input); err != nil {
		return h.pages.fail(c, err, addProductPath, form.keep())
	}

	return h.pages.redirect(c, middleware.DashboardPath(entity.RoleAdmin), session.CategorySuccess,
		"Product added successfully!")
}

// EditPage shows the form filled with the current product.
func (h *ProductHandler) EditPage(c echo.Context) error {
	product, err := h.ownedProduct(c)
	if err != nil {
		return h.notFound(c, err)
	}

	data := h.uploadRules()
	data["product"] = newProductView(product)

	return h.pages.render(c, "product/edit", data, map[string]string{
		"name":        product.Name,
		"price":       product.Price.StringFixed(entity.ProductPriceScale),
		"description": product.Description,
	})
}

// Edit replaces the product fields, and the image when a new one is sent.
// Ownership is checked before the form so a foreign id never sees form errors.
func (h *ProductHandler) Edit(c echo.Context) error {
	product, err := h.ownedProduct(c)
	if err != nil {
		return h.notFound(c, err)
	}
	back := editProductPath(product.ID)

	form := new(productForm)
	input, closeImage, err := h.readProduct(c, form)
	if err != nil {
		return h.pages.fail(c, err, back, form.keep())
	}
	defer closeImage()

	_, err = h.catalog.UpdateProduct(c.Request().Context(), product.ShopProfileID, product.ID, input)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return h.notFound(c, err)
	case err != nil:
		return h.pages.fail(c, err, back, form.keep())
	}

	return h.pages.redirect(c, middleware.DashboardPath(entity.RoleAdmin), session.CategorySuccess,
		"Product updated successfully!")
}

// DeletePage asks for confirmation.
func (h *ProductHandler) DeletePage(c echo.Context) error {
	product, err := h.ownedProduct(c)
	if err != nil {
		return h.notFound(c, err)
	}

	return h.pages.render(c, "product/delete", map[string]any{"product": newProductView(product)}, nil)
}

// Delete removes the product.
func (h *ProductHandler) Delete(c echo.Context) error {
	shopID, err := shopOf(c)
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return h.notFound(c, err)
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), shopID, productID); err != nil {
		return h.notFound(c, err)
	}

	return h.pages.redirect(c, middleware.DashboardPath(entity.RoleAdmin), session.CategorySuccess,
		"Product deleted successfully!")
}

// Import adds every row of an uploaded .xlsx sheet, or none of them.
func (h *ProductHandler) Import(c echo.Context) error {
	shopID, err := shopOf(c)
	if err != nil {
		return err
	}
	dashboard := middleware.DashboardPath(entity.RoleAdmin)

	header, err := c.FormFile("sheet")
	if err != nil {
		return h.pages.fail(c, domainerrors.ErrInvalidSheet.WithDetails("Choose an .xlsx file to import."), dashboard, nil)
	}

	file, err := header.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded sheet")
	}
	defer file.Close()

	products, err := h.catalog.ImportProducts(c.Request().Context(), shopID, file)
	if err != nil {
		return h.pages.fail(c, err, dashboard, nil)
	}

	return h.pages.redirect(c, dashboard, session.CategorySuccess,
		"Imported "+strconv.Itoa(len(products))+" products.")
}

// readProduct binds the form and opens the optional image. The returned
// func closes the image and is never nil.
func (h *ProductHandler) readProduct(c echo.Context, form *productForm) (*usecase.ProductInput, func(), error) {
	noop := func() {}

	if err := bindForm(c, form); err != nil {
		return nil, noop, err
	}

	price, err := usecase.ParsePrice(strings.TrimSpace(form.Price))
	if err != nil {
		return nil, noop, err
	}

	input := &usecase.ProductInput{
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
	}

	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return input, noop, nil
	case err != nil:
		return nil, noop, domainerrors.ErrInvalidImage.WithDetails("The uploaded file could not be read.")
	case header.Filename == "" || header.Size == 0:
		return input, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, "failed to open uploaded image")
	}
	input.Image = &usecase.ImageUpload{Filename: header.Filename, Content: file}

	return input, closer(file), nil
}

func (h *ProductHandler) ownedProduct(c echo.Context) (*entity.Product, error) {
	shopID, err := shopOf(c)
	if err != nil {
		return nil, err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return nil, err
	}

	return h.catalog.GetProduct(c.Request().Context(), shopID, productID)
}

// notFound sends the seller back to the dashboard. Products of other shops
// land here too.
func (h *ProductHandler) notFound(c echo.Context, err error) error {
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	return h.pages.redirect(c, middleware.DashboardPath(entity.RoleAdmin), session.CategoryWarning,
		domainerrors.ErrProductNotFound.Message())
}

func (h *ProductHandler) uploadRules() map[string]any {
	return map[string]any{"allowedExtensions": h.images.AllowedExtensions()}
}

func shopOf(c echo.Context) (uuid.UUID, error) {
	principal := deliverycontext.GetPrincipal(c)
	if principal == nil || principal.Shop == nil {
		return uuid.Nil, errMissingShop
	}

	return principal.Shop.ID, nil
}

func productIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrProductNotFound
	}

	return id, nil
}

func editProductPath(id uuid.UUID) string {
	return "/product/edit/" + id.String()
}

func closer(file multipart.File) func() {
	return func() { _ = file.Close() }
}
