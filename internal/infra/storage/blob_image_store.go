// Package storage keeps uploaded product images in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"shopfront/config"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/lifecycle"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const (
	// ImageDirectory is the fixed prefix every product image is stored under.
	ImageDirectory = "products"

	nameTokenBytes = 16
)

// storedName is a 32-character hex token plus a lowercase extension.
var storedName = regexp.MustCompile(`^[0-9a-f]{32}\.[a-z0-9]+$`)

// imageTypes is the only content type accepted and served for each extension.
var imageTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// BlobImageStore implements service.ImageStore on a blob bucket.
type BlobImageStore struct {
	bucket       *blob.Bucket
	publicPath   string
	allowed      []string
	maxSize      int64
	defaultImage string
}

// Params defines the dependencies for the fx-built image store
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the bucket at upload.bucketURL and closes it on stop.
func New(params Params) (service.ImageStore, error) {
	cfg := params.Config.Upload
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("upload.bucketURL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image bucket %q", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if _, err := bucket.IsAccessible(ctx); err != nil {
				return errors.Wrap(err, "image bucket is not accessible")
			}
			params.Logger.Info("Image bucket opened", slog.String("directory", ImageDirectory))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobImageStore(bucket, cfg), nil
}

// NewBlobImageStore stores images under ImageDirectory inside bucket.
// Configured extensions without a known image type are ignored.
func NewBlobImageStore(bucket *blob.Bucket, cfg *config.UploadConfig) *BlobImageStore {
	allowed := make([]string, 0, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = normalizeExtension(ext)
		if _, ok := imageTypes[ext]; ok && !slices.Contains(allowed, ext) {
			allowed = append(allowed, ext)
		}
	}

	return &BlobImageStore{
		bucket:       blob.PrefixedBucket(bucket, ImageDirectory+"/"),
		publicPath:   strings.TrimRight(cfg.PublicPath, "/"),
		allowed:      allowed,
		maxSize:      cfg.MaxImageSize,
		defaultImage: cfg.DefaultImage,
	}
}

// AllowedExtensions lists the accepted extensions without dots.
func (s *BlobImageStore) AllowedExtensions() []string {
	return slices.Clone(s.allowed)
}

func (s *BlobImageStore) DefaultRef() string {
	return s.defaultImage
}

// Save never derives the stored name from originalName; only its extension is kept.
func (s *BlobImageStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	ext := normalizeExtension(path.Ext(strings.ReplaceAll(originalName, "\\", "/")))
	if ext == "" || !slices.Contains(s.allowed, ext) {
		return "", domainerrors.ErrInvalidImage.WithDetails(
			"Allowed file types: " + strings.Join(s.allowed, ", ") + ".")
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read uploaded image")
	}
	switch {
	case len(data) == 0:
		return "", domainerrors.ErrInvalidImage.WithDetails("The uploaded file is empty.")
	case int64(len(data)) > s.maxSize:
		return "", domainerrors.ErrInvalidImage.WithDetails(
			"Images must be smaller than " + util.FormatBytes(s.maxSize) + ".")
	}

	contentType := imageTypes[ext]
	if !mimetype.Detect(data).Is(contentType) {
		return "", domainerrors.ErrInvalidImage.WithDetails(
			"The uploaded file is not a valid ." + ext + " image.")
	}

	token, err := util.RandomHex(nameTokenBytes)
	if err != nil {
		return "", err
	}
	name := token + "." + ext

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, name, data, opts); err != nil {
		return "", errors.Wrap(err, "failed to store image")
	}

	return s.publicPath + "/" + ImageDirectory + "/" + name, nil
}

// Open returns ErrNotFound for unknown names and for anything that is not a
// name produced by Save. The content type comes from the extension, never
// from the stored object.
func (s *BlobImageStore) Open(ctx context.Context, name string) (*service.StoredImage, error) {
	if !storedName.MatchString(name) {
		return nil, domainerrors.ErrNotFound
	}
	contentType, ok := imageTypes[path.Ext(name)[1:]]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}

	reader, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to open image")
	}

	return &service.StoredImage{
		Content:     reader,
		ContentType: contentType,
		Size:        reader.Size(),
	}, nil
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

var _ service.ImageStore = (*BlobImageStore)(nil)

