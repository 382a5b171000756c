// Package imagestore turns uploaded image files into product image records.
// A deployment uses exactly one Store: inline blobs, local disk or Google
// Cloud Storage.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedTypes maps the accepted content types to their file extension.
var AllowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is one image file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Limits bounds a single request's uploads.
type Limits struct {
	MaxFiles    int
	MaxFileSize int64
}

// Store persists image payloads and describes them as ProductImages.
type Store interface {
	// Save stores up and returns the image record to attach to a product.
	Save(ctx context.Context, up Upload) (models.ProductImage, error)
	// Remove deletes whatever Save stored for img. Used to undo a failed write.
	Remove(ctx context.Context, img models.ProductImage) error
	Close() error
}

// ReadUploads reads and checks multipart file headers. The content type is
// sniffed from the bytes; the client supplied header is ignored.
func ReadUploads(files []*multipart.FileHeader, limits Limits) ([]Upload, error) {
	if len(files) > limits.MaxFiles {
		return nil, apperror.Validation(fmt.Sprintf("Too many files: at most %d images allowed", limits.MaxFiles), nil)
	}
	uploads := make([]Upload, 0, len(files))
	for _, fh := range files {
		if fh.Size > limits.MaxFileSize {
			return nil, tooLarge(fh.Filename, limits)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, limits.MaxFileSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, Upload{Filename: fh.Filename, Data: data})
	}
	if err := Check(uploads, limits); err != nil {
		return nil, err
	}
	return uploads, nil
}

// Check enforces limits on uploads and fills in each sniffed ContentType.
func Check(uploads []Upload, limits Limits) error {
	if len(uploads) > limits.MaxFiles {
		return apperror.Validation(fmt.Sprintf("Too many files: at most %d images allowed", limits.MaxFiles), nil)
	}
	for i := range uploads {
		up := &uploads[i]
		if int64(len(up.Data)) > limits.MaxFileSize {
			return tooLarge(up.Filename, limits)
		}
		ct := Sniff(up.Data)
		if _, ok := AllowedTypes[ct]; !ok {
			return apperror.Validation(
				fmt.Sprintf("Invalid file type for %s: only jpeg, png, gif and webp images are allowed", up.Filename),
				map[string]string{"images": "unsupported type " + ct},
			)
		}
		up.ContentType = ct
	}
	return nil
}

// Sniff returns the media type of data without parameters.
func Sniff(data []byte) string {
	ct := mimetype.Detect(data).String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func tooLarge(name string, limits Limits) error {
	return apperror.Validation(
		fmt.Sprintf("File %s is too large: maximum size is %d MB", name, limits.MaxFileSize/(1024*1024)),
		map[string]string{"images": "file too large"},
	)
}

// SaveAll stores every upload. If one fails, the ones already stored are
// removed before the error is returned.
func SaveAll(ctx context.Context, store Store, uploads []Upload) ([]models.ProductImage, error) {
	images := make([]models.ProductImage, 0, len(uploads))
	for _, up := range uploads {
		img, err := store.Save(ctx, up)
		if err != nil {
			RemoveAll(ctx, store, images)
			return nil, fmt.Errorf("failed to store image %s: %w", up.Filename, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// RemoveAll removes images on a best effort basis.
func RemoveAll(ctx context.Context, store Store, images []models.ProductImage) {
	for _, img := range images {
		_ = store.Remove(ctx, img)
	}
}
