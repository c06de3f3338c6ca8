package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/docshelf/docshelf/pkg/validator"
)

// Health handles GET /api/health.
func Health(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"features": map[string]bool{
			"pdfSupport": true,
		},
	})
}

// SupportedTypes handles GET /api/supported-types.
func SupportedTypes(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]any{
		"supportedTypes": validator.AcceptedExtensions(),
		"maxFileSize":    validator.MaxFileSize,
	})
}
