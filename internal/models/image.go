package models

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// ImageKind tags which variant a ProductImage holds.
type ImageKind string

const (
	// ImageInline images carry their bytes and content type in the row.
	ImageInline ImageKind = "inline"
	// ImageReference images point at a file served elsewhere.
	ImageReference ImageKind = "reference"
)

// ProductImage is either Inline{Data, ContentType} or Reference{URL}.
// Rows are insert-only; ID order is display order.
type ProductImage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	ProductID   string    `gorm:"type:varchar(36);not null;index"`
	Kind        ImageKind `gorm:"type:varchar(16);not null"`
	Data        []byte
	ContentType string `gorm:"type:varchar(64)"`
	URL         string `gorm:"type:varchar(1024)"`
	CreatedAt   time.Time
}

// InlineImage builds an inline image variant.
func InlineImage(data []byte, contentType string) ProductImage {
	return ProductImage{Kind: ImageInline, Data: data, ContentType: contentType}
}

// ReferenceImage builds a reference image variant.
func ReferenceImage(url, contentType string) ProductImage {
	return ProductImage{Kind: ImageReference, URL: url, ContentType: contentType}
}

// DataURI renders an inline image as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Src is the value a client puts into an <img src>.
func (i ProductImage) Src() string {
	if i.Kind == ImageInline {
		return DataURI(i.ContentType, i.Data)
	}
	return i.URL
}

// MarshalJSON hides the raw payload and exposes Src as "url".
func (i ProductImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          uint      `json:"id"`
		Kind        ImageKind `json:"kind"`
		ContentType string    `json:"contentType"`
		URL         string    `json:"url"`
	}{
		ID:          i.ID,
		Kind:        i.Kind,
		ContentType: i.ContentType,
		URL:         i.Src(),
	})
}
