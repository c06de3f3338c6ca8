// Package cloudinary implements the Cloudinary object-store backend.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/docshelf/docshelf/pkg/config"
	"github.com/docshelf/docshelf/pkg/storage"
	"github.com/docshelf/docshelf/pkg/validator"
)

const publicIDFolder = "documents"

// Store implements storage.ObjectStore against the Cloudinary upload API.
type Store struct {
	client *cloudinary.Cloudinary
}

// New creates a Cloudinary backend from the credential triple.
func New(cfg config.CloudinaryConfig) (*Store, error) {
	if !cfg.Configured() {
		return nil, storage.ErrNotConfigured
	}
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Store{client: client}, nil
}

// Upload stores the document bytes and returns the canonical secure URL.
// Documents are always uploaded as uninterpreted raw streams; PDFs
// additionally pin the format so the CDN serves the right media type.
func (s *Store) Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	params := uploader.UploadParams{
		PublicID:       publicIDFor(in.FileName),
		ResourceType:   resourceTypeFor(in.Mode),
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(false),
	}
	if in.Mode == validator.ModeRawAttachment {
		params.Format = "pdf"
	}

	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(in.Data), params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	return &storage.UploadResult{
		URL:      result.SecureURL,
		ObjectID: result.PublicID,
	}, nil
}

// Delete destroys the stored bytes for a previously uploaded document.
func (s *Store) Delete(ctx context.Context, objectID string) error {
	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     objectID,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", result.Result)
	}
	return nil
}

func resourceTypeFor(mode validator.DeliveryMode) string {
	if mode == validator.ModeImage {
		return "image"
	}
	return "raw"
}

// publicIDFor builds "documents/<uuid>_<name>". The original file name is
// kept in the ID so retrieval URLs stay recognizable; path separators and
// spaces are squashed since Cloudinary treats them as folder structure.
func publicIDFor(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s_%s", publicIDFolder, uuid.NewString(), base)
}
