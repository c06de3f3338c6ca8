package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	documentservice "github.com/docshelf/docshelf/biz/service/document"
	"github.com/docshelf/docshelf/pkg/storage"
)

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Error string `json:"error"`
}

func writeError(c *app.RequestContext, status int, msg string) {
	c.JSON(status, errorBody{Error: msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Upstream failures are logged in full and surfaced generically.
func writeServiceError(ctx context.Context, c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, documentservice.ErrDocumentNotFound):
		writeError(c, consts.StatusNotFound, documentservice.ErrDocumentNotFound.Error())
	case documentservice.IsValidationError(err):
		writeError(c, consts.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotConfigured):
		hlog.CtxErrorf(ctx, "upload rejected: %v", err)
		writeError(c, consts.StatusInternalServerError, storage.ErrNotConfigured.Error())
	default:
		hlog.CtxErrorf(ctx, "internal error: %v", err)
		writeError(c, consts.StatusInternalServerError, "internal server error")
	}
}
