package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/docshelf/docshelf/biz/dal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Document{}); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection.
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestDocument inserts a document with sensible defaults, applying
// any mutation before the insert.
func CreateTestDocument(t *testing.T, db *gorm.DB, mutate func(*model.Document)) *model.Document {
	t.Helper()
	dao := NewDocumentDAO()
	doc := &model.Document{
		Title:       "Test Document",
		Author:      "Test Author",
		Category:    "General",
		Description: "Test description",
		FileName:    "test.pdf",
		Extension:   ".pdf",
		FileSize:    "1 KB",
		FileURL:     "https://res.cloudinary.com/demo/raw/upload/v1/documents/test.pdf",
		PreviewURL:  "https://res.cloudinary.com/demo/raw/upload/v1/documents/test.pdf",
		DownloadURL: "https://res.cloudinary.com/demo/raw/upload/v1/documents/test.pdf?fl_attachment=true",
		StorageID:   "documents/test",
		UploadTime:  time.Now(),
	}
	if mutate != nil {
		mutate(doc)
	}
	if err := dao.Create(context.Background(), db, doc); err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}
	return doc
}
