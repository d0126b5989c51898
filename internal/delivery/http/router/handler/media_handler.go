package handler

import (
	"net/http"
	"strconv"

	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"

	"github.com/labstack/echo/v4"
)

// MediaHandler streams stored product images.
type MediaHandler struct {
	images service.ImageStore
}

// NewMediaHandler is the constructor for MediaHandler.
func NewMediaHandler(images service.ImageStore) *MediaHandler {
	return &MediaHandler{images: images}
}

func (h *MediaHandler) ProductImage(c echo.Context) error {
	image, err := h.images.Open(c.Request().Context(), c.Param("name"))
	if errors.Is(err, domainerrors.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	defer image.Content.Close()

	header := c.Response().Header()
	header.Set("Cache-Control", "public, max-age=86400, immutable")
	header.Set("X-Content-Type-Options", "nosniff")
	if image.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(image.Size, 10))
	}

	return c.Stream(http.StatusOK, image.ContentType, image.Content)
}
