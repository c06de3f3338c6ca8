package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docshelf/docshelf/biz/dal/model"

	"gorm.io/gorm"
)

// DocumentDAO handles CRUD operations for catalog documents.
type DocumentDAO struct{}

func NewDocumentDAO() *DocumentDAO { return &DocumentDAO{} }

// ListQuery describes a filtered, sorted catalog listing.
type ListQuery struct {
	Search   string // case-insensitive substring over title/author/description
	Category string // exact match
	OrderBy  string // column name, already validated by the caller
	Desc     bool
}

func (dao *DocumentDAO) Create(ctx context.Context, db *gorm.DB, doc *model.Document) error {
	if doc == nil {
		return errors.New("document must not be nil")
	}
	if doc.DocID == "" {
		doc.DocID = uuid.NewString()
	}
	if doc.UploadTime.IsZero() {
		doc.UploadTime = time.Now()
	}
	return db.WithContext(ctx).Create(doc).Error
}

func (dao *DocumentDAO) GetByDocID(ctx context.Context, db *gorm.DB, docID string) (*model.Document, error) {
	var doc model.Document
	if err := db.WithContext(ctx).Where("doc_id = ?", docID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateFields applies a partial update restricted to the mutable columns.
// Unknown columns are silently dropped so file-derived fields can never be
// rewritten through this path.
func (dao *DocumentDAO) UpdateFields(ctx context.Context, db *gorm.DB, docID string, fields map[string]any) (*model.Document, error) {
	allowed := map[string]bool{"title": true, "author": true, "category": true, "description": true}
	updates := make(map[string]any, len(fields))
	for column, value := range fields {
		if allowed[column] {
			updates[column] = value
		}
	}

	doc, err := dao.GetByDocID(ctx, db, docID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return doc, nil
	}

	if err := db.WithContext(ctx).
		Model(&model.Document{}).
		Where("doc_id = ?", docID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return dao.GetByDocID(ctx, db, docID)
}

func (dao *DocumentDAO) DeleteByDocID(ctx context.Context, db *gorm.DB, docID string) error {
	result := db.WithContext(ctx).Where("doc_id = ?", docID).Delete(&model.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns documents matching the query. Search and category filters
// combine with AND when both are present.
func (dao *DocumentDAO) List(ctx context.Context, db *gorm.DB, query ListQuery) ([]model.Document, error) {
	tx := db.WithContext(ctx).Model(&model.Document{})

	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	orderBy := query.OrderBy
	if orderBy == "" {
		orderBy = "upload_time"
	}
	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}
	tx = tx.Order(orderBy + " " + direction)

	var docs []model.Document
	if err := tx.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// DistinctCategories enumerates the category facet.
func (dao *DocumentDAO) DistinctCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var categories []string
	if err := db.WithContext(ctx).
		Model(&model.Document{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
