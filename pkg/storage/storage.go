// Package storage defines the object-store abstraction for document bytes.
// The catalog never reads bytes back: the store returns a public retrieval
// URL at upload time and clients fetch content from the store directly.
package storage

import (
	"context"
	"errors"

	"github.com/docshelf/docshelf/pkg/validator"
)

// ErrNotConfigured is returned by every call when no object-store
// credentials were supplied. Uploads must fail deterministically in that
// case rather than crash.
var ErrNotConfigured = errors.New("storage not configured")

// UploadInput carries one document's bytes and delivery options.
type UploadInput struct {
	Data        []byte
	FileName    string
	ContentType string
	Mode        validator.DeliveryMode
}

// UploadResult is the store's answer: the canonical retrieval URL and the
// opaque identifier needed to delete the bytes later.
type UploadResult struct {
	URL      string
	ObjectID string
}

// ObjectStore is implemented by every storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, objectID string) error
}

// Disabled is the backend selected when credentials are absent.
type Disabled struct{}

func (Disabled) Upload(context.Context, UploadInput) (*UploadResult, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}
