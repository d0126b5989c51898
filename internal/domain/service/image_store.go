package service

import (
	"context"
	"io"
)

// StoredImage is an image read back from storage.
type StoredImage struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStore persists uploaded product images under random names.
type ImageStore interface {
	// Save validates the original filename against the extension allow-list,
	// stores the content under a fresh random name and returns its public reference.
	Save(ctx context.Context, originalName string, content io.Reader) (ref string, err error)

	// Open reads back an image by the name inside the product image directory.
	Open(ctx context.Context, name string) (*StoredImage, error)

	// DefaultRef is the placeholder used when a product has no uploaded image.
	DefaultRef() string

	// AllowedExtensions lists the accepted extensions without dots.
	AllowedExtensions() []string
}
