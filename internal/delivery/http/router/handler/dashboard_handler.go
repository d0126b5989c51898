package handler

import (
	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the role dashboards. Both routes sit behind the
// role gate, so a principal is always present.
type DashboardHandler struct {
	pages   *Pages
	catalog usecase.CatalogUsecase
}

// NewDashboardHandler is the constructor for DashboardHandler.
func NewDashboardHandler(pages *Pages, catalog usecase.CatalogUsecase) *DashboardHandler {
	return &DashboardHandler{pages: pages, catalog: catalog}
}

func (h *DashboardHandler) Viewer(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)

	return h.pages.render(c, "dashboard/viewer", map[string]any{
		"account": newAccountView(principal.Account),
	}, nil)
}

// Admin lists the products of the seller's shop. The first visit to an
// empty shop fills it with the demo products.
func (h *DashboardHandler) Admin(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)
	if principal.Shop == nil {
		return errMissingShop
	}

	products, err := h.catalog.ListForOwner(c.Request().Context(), principal.Shop.ID)
	if err != nil {
		return err
	}

	return h.pages.render(c, "dashboard/admin", map[string]any{
		"account":  newAccountView(principal.Account),
		"shop":     newShopView(principal.Shop),
		"products": newProductViews(products),
	}, nil)
}
