// Package document orchestrates the catalog: upload classification, object
// storage, URL derivation and metadata persistence.
package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"

	"github.com/docshelf/docshelf/biz/dal/db"
	"github.com/docshelf/docshelf/biz/dal/model"
	"github.com/docshelf/docshelf/pkg/common"
	"github.com/docshelf/docshelf/pkg/delivery"
	"github.com/docshelf/docshelf/pkg/storage"
	"github.com/docshelf/docshelf/pkg/validator"
)

// Validation failures detected before any external call.
var (
	ErrMissingFile      = errors.New("no file uploaded")
	ErrTitleRequired    = errors.New("title is required")
	ErrCategoryRequired = errors.New("category is required")
)

// ErrDocumentNotFound is returned when an id does not resolve to a record.
var ErrDocumentNotFound = errors.New("document not found")

// IsValidationError reports whether err belongs to the 400-class taxonomy.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingFile, ErrTitleRequired, ErrCategoryRequired,
		validator.ErrUnsupportedType, validator.ErrInvalidPDF,
		validator.ErrFileTooLarge, validator.ErrEmptyFile,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Service coordinates the catalog store and the object store.
type Service struct {
	db      *gorm.DB
	dao     *db.DocumentDAO
	store   storage.ObjectStore
	timeout time.Duration
}

func NewService(gdb *gorm.DB, store storage.ObjectStore, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{db: gdb, dao: db.NewDocumentDAO(), store: store, timeout: timeout}
}

// UploadInput carries the multipart form contents of a create request.
type UploadInput struct {
	Title       string
	Author      string
	Category    string
	Description string
	FileName    string
	ContentType string
	Data        []byte
}

// Upload runs the creation pipeline. Ordering is deliberate: metadata and
// file validation happen before the object-store call so an invalid record
// never leaves orphaned bytes, and the catalog row is written only after a
// successful upload.
func (s *Service) Upload(ctx context.Context, input *UploadInput) (*model.Document, error) {
	if input == nil || len(input.Data) == 0 {
		return nil, ErrMissingFile
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}

	classification, err := validator.Classify(input.FileName, input.ContentType, int64(len(input.Data)))
	if err != nil {
		return nil, err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	stored, err := s.store.Upload(uploadCtx, storage.UploadInput{
		Data:        input.Data,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Mode:        classification.Mode,
	})
	if err != nil {
		return nil, err
	}

	urls := delivery.Derive(stored.URL, classification.Extension)

	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = model.UnknownAuthor
	}

	doc := &model.Document{
		Title:       title,
		Author:      author,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		FileName:    input.FileName,
		Extension:   classification.Extension,
		FileSize:    common.FormatFileSize(int64(len(input.Data))),
		FileURL:     stored.URL,
		PreviewURL:  urls.Preview,
		DownloadURL: urls.Download,
		StorageID:   stored.ObjectID,
		UploadTime:  time.Now(),
	}
	if err := s.dao.Create(ctx, s.db, doc); err != nil {
		// The record never existed, so the uploaded bytes are orphans.
		// Clean them up best-effort.
		cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), s.timeout)
		defer cancelCleanup()
		if delErr := s.store.Delete(cleanupCtx, stored.ObjectID); delErr != nil {
			hlog.Errorf("orphan cleanup failed for %s: %v", stored.ObjectID, delErr)
		}
		return nil, err
	}
	return doc, nil
}

// Get fetches one document by its public id.
func (s *Service) Get(ctx context.Context, docID string) (*model.Document, error) {
	doc, err := s.dao.GetByDocID(ctx, s.db, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

// ListParams are the raw list/search HTTP parameters.
type ListParams struct {
	Search   string
	Category string
	Sort     string // "field:direction", default "uploadTime:desc"
}

// sortColumns maps accepted sort fields to catalog columns.
var sortColumns = map[string]string{
	"title":       "title",
	"author":      "author",
	"category":    "category",
	"fileName":    "file_name",
	"file_name":   "file_name",
	"fileSize":    "file_size",
	"file_size":   "file_size",
	"uploadTime":  "upload_time",
	"upload_time": "upload_time",
}

// List translates the HTTP parameters into a catalog query and runs it.
// Unrecognized sort fields fall back to upload time; any direction other
// than "asc" sorts descending.
func (s *Service) List(ctx context.Context, params ListParams) ([]model.Document, error) {
	field, direction, _ := strings.Cut(params.Sort, ":")
	column, ok := sortColumns[field]
	if !ok {
		column = "upload_time"
	}

	return s.dao.List(ctx, s.db, db.ListQuery{
		Search:   strings.TrimSpace(params.Search),
		Category: strings.TrimSpace(params.Category),
		OrderBy:  column,
		Desc:     direction != "asc",
	})
}

// UpdateInput carries the PATCH body; nil fields are left untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// Update applies a partial metadata update to the mutable fields.
func (s *Service) Update(ctx context.Context, docID string, input *UpdateInput) (*model.Document, error) {
	fields := map[string]any{}
	if input != nil {
		if input.Title != nil {
			fields["title"] = *input.Title
		}
		if input.Author != nil {
			fields["author"] = *input.Author
		}
		if input.Category != nil {
			fields["category"] = *input.Category
		}
		if input.Description != nil {
			fields["description"] = *input.Description
		}
	}

	doc, err := s.dao.UpdateFields(ctx, s.db, docID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	return doc, err
}

// Delete removes a document. Object-store deletion runs first; if it fails
// the catalog row stays so metadata never outlives unreachable bytes in
// the other direction. A catalog failure after a successful byte delete
// leaves a harmless absence of metadata (accepted tradeoff).
func (s *Service) Delete(ctx context.Context, docID string) error {
	doc, err := s.dao.GetByDocID(ctx, s.db, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}

	deleteCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.Delete(deleteCtx, doc.StorageID); err != nil {
		return err
	}

	if err := s.dao.DeleteByDocID(ctx, s.db, docID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Categories enumerates the distinct category facet.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.dao.DistinctCategories(ctx, s.db)
}
