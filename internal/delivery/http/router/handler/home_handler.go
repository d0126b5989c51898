package handler

import (
	"net/http"

	deliverycontext "shopfront/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the neutral landing page.
type HomeHandler struct {
	pages *Pages
}

// NewHomeHandler is the constructor for HomeHandler.
func NewHomeHandler(pages *Pages) *HomeHandler {
	return &HomeHandler{pages: pages}
}

// Home shows who is signed in, if anyone.
func (h *HomeHandler) Home(c echo.Context) error {
	var data any
	if principal := deliverycontext.GetPrincipal(c); principal != nil {
		data = map[string]any{"account": newAccountView(principal.Account)}
	}

	return h.pages.render(c, "home", data, nil)
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
