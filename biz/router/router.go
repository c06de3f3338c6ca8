package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/docshelf/docshelf/biz/handler"
)

// Register configures the catalog HTTP routes.
func Register(r *server.Hertz, h *handler.DocumentHandler) {
	if h == nil {
		return
	}

	api := r.Group("/api")

	documents := api.Group("/documents")
	documents.GET("", h.List)
	documents.POST("", h.Upload)
	documents.GET("/:id", h.Get)
	documents.GET("/:id/preview", h.Preview)
	documents.GET("/:id/download", h.Download)
	documents.PATCH("/:id", h.Update)
	documents.DELETE("/:id", h.Delete)

	api.GET("/categories", h.Categories)
	api.GET("/supported-types", handler.SupportedTypes)
	api.GET("/health", handler.Health)
}
