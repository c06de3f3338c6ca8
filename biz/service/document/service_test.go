package document_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/docshelf/docshelf/biz/dal/model"
	documentservice "github.com/docshelf/docshelf/biz/service/document"
	"github.com/docshelf/docshelf/pkg/storage"
	"github.com/docshelf/docshelf/pkg/validator"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeStore records calls and mints Cloudinary-shaped URLs.
type fakeStore struct {
	uploads   int
	deletes   []string
	uploadErr error
	deleteErr error
}

func (f *fakeStore) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads++
	id := fmt.Sprintf("documents/%s_%s", uuid.NewString(), in.FileName)
	return &storage.UploadResult{
		URL:      "https://res.cloudinary.com/demo/raw/upload/v1/" + id,
		ObjectID: id,
	}, nil
}

func (f *fakeStore) Delete(_ context.Context, objectID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, objectID)
	return nil
}

func newTestService(t *testing.T, store storage.ObjectStore) *documentservice.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Document{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return documentservice.NewService(db, store, 0)
}

func pdfUpload(title, category string) *documentservice.UploadInput {
	return &documentservice.UploadInput{
		Title:       title,
		Category:    category,
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 test"),
	}
}

func TestUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(t, store)

	created, err := svc.Upload(ctx, pdfUpload("T", "C"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if created.DocID == "" {
		t.Fatal("expected DocID assigned")
	}

	fetched, err := svc.Get(ctx, created.DocID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.Title != "T" || fetched.Category != "C" {
		t.Fatalf("round-trip mismatch: %+v", fetched)
	}
	if fetched.PreviewURL == "" || fetched.DownloadURL == "" {
		t.Fatal("expected non-empty derived URLs")
	}
	if !strings.Contains(fetched.DownloadURL, "fl_attachment") {
		t.Fatalf("PDF download URL missing attachment marker: %s", fetched.DownloadURL)
	}
	if fetched.Extension != ".pdf" {
		t.Fatalf("unexpected extension %s", fetched.Extension)
	}
	if fetched.Author != model.UnknownAuthor {
		t.Fatalf("expected unknown-author placeholder, got %q", fetched.Author)
	}
	if fetched.FileSize == "" {
		t.Fatal("expected formatted file size")
	}
}

func TestUploadValidatesBeforeStorage(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input *documentservice.UploadInput
		want  error
	}{
		{"MissingTitle", &documentservice.UploadInput{
			Category: "C", FileName: "a.txt", ContentType: "text/plain", Data: []byte("x"),
		}, documentservice.ErrTitleRequired},
		{"MissingCategory", &documentservice.UploadInput{
			Title: "T", FileName: "a.txt", ContentType: "text/plain", Data: []byte("x"),
		}, documentservice.ErrCategoryRequired},
		{"MissingFile", &documentservice.UploadInput{Title: "T", Category: "C"}, documentservice.ErrMissingFile},
		{"UnsupportedType", &documentservice.UploadInput{
			Title: "T", Category: "C", FileName: "a.exe", ContentType: "application/octet-stream", Data: []byte("x"),
		}, validator.ErrUnsupportedType},
		{"InvalidPDF", &documentservice.UploadInput{
			Title: "T", Category: "C", FileName: "a.pdf", ContentType: "text/html", Data: []byte("x"),
		}, validator.ErrInvalidPDF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(t, store)
			_, err := svc.Upload(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !documentservice.IsValidationError(err) {
				t.Fatalf("expected a validation-class error, got %v", err)
			}
			if store.uploads != 0 {
				t.Fatal("object store must not be called for invalid input")
			}
		})
	}
}

func TestUploadStorageNotConfigured(t *testing.T) {
	svc := newTestService(t, storage.Disabled{})
	_, err := svc.Upload(context.Background(), pdfUpload("T", "C"))
	if !errors.Is(err, storage.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestDeleteFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletesBytesThenRow", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(t, store)
		created, err := svc.Upload(ctx, pdfUpload("T", "C"))
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}

		if err := svc.Delete(ctx, created.DocID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if len(store.deletes) != 1 || store.deletes[0] != created.StorageID {
			t.Fatalf("expected byte delete for %s, got %v", created.StorageID, store.deletes)
		}
		if _, err := svc.Get(ctx, created.DocID); !errors.Is(err, documentservice.ErrDocumentNotFound) {
			t.Fatalf("expected record gone, got %v", err)
		}
	})

	t.Run("StorageFailureKeepsRow", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(t, store)
		created, err := svc.Upload(ctx, pdfUpload("T", "C"))
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}

		store.deleteErr = errors.New("object store down")
		if err := svc.Delete(ctx, created.DocID); err == nil {
			t.Fatal("expected delete to fail")
		}
		if _, err := svc.Get(ctx, created.DocID); err != nil {
			t.Fatalf("catalog row must survive a failed byte delete: %v", err)
		}
	})

	t.Run("NotFoundTouchesNothing", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(t, store)
		if err := svc.Delete(ctx, "missing"); !errors.Is(err, documentservice.ErrDocumentNotFound) {
			t.Fatalf("expected ErrDocumentNotFound, got %v", err)
		}
		if len(store.deletes) != 0 {
			t.Fatal("object store must stay untouched for unknown ids")
		}
	})
}

func TestListQueryRouting(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(t, store)

	seed := []struct{ title, author, category string }{
		{"Algebra Primer", "Alice Nguyen", "Math"},
		{"Chemistry Notes", "Bob Tran", "Science"},
	}
	for _, s := range seed {
		input := &documentservice.UploadInput{
			Title: s.title, Author: s.author, Category: s.category,
			FileName: "notes.txt", ContentType: "text/plain", Data: []byte("hello"),
		}
		if _, err := svc.Upload(ctx, input); err != nil {
			t.Fatalf("seed upload: %v", err)
		}
	}

	t.Run("SearchByAuthor", func(t *testing.T) {
		docs, err := svc.List(ctx, documentservice.ListParams{Search: "ALICE"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(docs) != 1 || docs[0].Title != "Algebra Primer" {
			t.Fatalf("unexpected search result: %+v", docs)
		}
	})

	t.Run("UnknownSortFieldFallsBack", func(t *testing.T) {
		docs, err := svc.List(ctx, documentservice.ListParams{Sort: "bogus:asc"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("expected 2 docs, got %d", len(docs))
		}
	})

	t.Run("SortTitleAsc", func(t *testing.T) {
		docs, err := svc.List(ctx, documentservice.ListParams{Sort: "title:asc"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if docs[0].Title != "Algebra Primer" {
			t.Fatalf("unexpected order: %+v", docs)
		}
	})

	t.Run("Categories", func(t *testing.T) {
		categories, err := svc.Categories(ctx)
		if err != nil {
			t.Fatalf("Categories: %v", err)
		}
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %v", categories)
		}
	})
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(t, store)

	created, err := svc.Upload(ctx, &documentservice.UploadInput{
		Title: "T", Author: "A", Category: "C", Description: "old",
		FileName: "notes.txt", ContentType: "text/plain", Data: []byte("hello"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	desc := "new description"
	updated, err := svc.Update(ctx, created.DocID, &documentservice.UpdateInput{Description: &desc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != desc {
		t.Fatalf("description not updated: %+v", updated)
	}
	if updated.Title != "T" || updated.Author != "A" || updated.Category != "C" {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", &documentservice.UpdateInput{Description: &desc}); !errors.Is(err, documentservice.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
