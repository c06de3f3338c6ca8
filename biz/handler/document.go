package handler

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/docshelf/docshelf/biz/dal/model"
	documentservice "github.com/docshelf/docshelf/biz/service/document"
	"github.com/docshelf/docshelf/pkg/delivery"
	"github.com/docshelf/docshelf/pkg/validator"
)

// DocumentHandler exposes the catalog HTTP surface.
type DocumentHandler struct {
	service *documentservice.Service
}

func NewDocumentHandler(service *documentservice.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List handles GET /api/documents with search/category/sort parameters.
func (h *DocumentHandler) List(ctx context.Context, c *app.RequestContext) {
	docs, err := h.service.List(ctx, documentservice.ListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	c.JSON(consts.StatusOK, docs)
}

// documentDetail adds the derived urls object to the record payload.
type documentDetail struct {
	*model.Document
	URLs detailURLs `json:"urls"`
}

type detailURLs struct {
	Preview   string `json:"preview"`
	Download  string `json:"download"`
	Canonical string `json:"canonical"`
}

// Get handles GET /api/documents/:id.
func (h *DocumentHandler) Get(ctx context.Context, c *app.RequestContext) {
	doc, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, documentDetail{
		Document: doc,
		URLs: detailURLs{
			Preview:   doc.PreviewURL,
			Download:  doc.DownloadURL,
			Canonical: doc.FileURL,
		},
	})
}

// Preview handles GET /api/documents/:id/preview: a redirect to the inline
// view. PDF responses re-assert the media type and inline disposition so
// browsers render rather than download.
func (h *DocumentHandler) Preview(ctx context.Context, c *app.RequestContext) {
	doc, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	if doc.Extension == ".pdf" {
		c.Response.Header.Set("Content-Type", validator.PDFContentType)
		c.Response.Header.Set("Content-Disposition", delivery.InlineDisposition(doc.FileName))
	}
	c.Redirect(consts.StatusFound, []byte(doc.PreviewURL))
}

// Download handles GET /api/documents/:id/download: a redirect that forces
// attachment disposition.
func (h *DocumentHandler) Download(ctx context.Context, c *app.RequestContext) {
	doc, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	c.Response.Header.Set("Content-Disposition", delivery.AttachmentDisposition(doc.FileName))
	c.Redirect(consts.StatusFound, []byte(doc.DownloadURL))
}

// Upload handles POST /api/documents (multipart).
func (h *DocumentHandler) Upload(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, consts.StatusBadRequest, documentservice.ErrMissingFile.Error())
		return
	}
	// Fail fast on oversized payloads before buffering the body.
	if fileHeader.Size > validator.MaxFileSize {
		writeError(c, consts.StatusBadRequest, validator.ErrFileTooLarge.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, consts.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}

	doc, err := h.service.Upload(ctx, &documentservice.UploadInput{
		Title:       string(c.FormValue("title")),
		Author:      string(c.FormValue("author")),
		Category:    string(c.FormValue("category")),
		Description: string(c.FormValue("description")),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, doc)
}

// Update handles PATCH /api/documents/:id.
func (h *DocumentHandler) Update(ctx context.Context, c *app.RequestContext) {
	var input documentservice.UpdateInput
	if body := c.Request.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &input); err != nil {
			writeError(c, consts.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	doc, err := h.service.Update(ctx, c.Param("id"), &input)
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, doc)
}

// Delete handles DELETE /api/documents/:id.
func (h *DocumentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"message": "document deleted"})
}

// Categories handles GET /api/categories.
func (h *DocumentHandler) Categories(ctx context.Context, c *app.RequestContext) {
	categories, err := h.service.Categories(ctx)
	if err != nil {
		writeServiceError(ctx, c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(consts.StatusOK, categories)
}
