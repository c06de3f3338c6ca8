package middleware

import (
	"context"
	"regexp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/docshelf/docshelf/pkg/config"
)

// Localhost origins are always admitted so local frontends work without
// deployment configuration.
var localOriginRegexp = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)

// CORS returns a middleware enforcing the configured origin allow-list.
// Requests without an Origin header (curl, same-origin) pass untouched;
// disallowed origins get no CORS headers, which makes browsers block the
// response.
func CORS(cfg *config.CORSConfig) app.HandlerFunc {
	allowMethods := "GET,POST,PATCH,DELETE,OPTIONS"
	allowHeaders := "*"
	allowCredentials := "false"
	allowed := make(map[string]bool)

	if cfg != nil {
		if cfg.AllowMethods != "" {
			allowMethods = cfg.AllowMethods
		}
		if cfg.AllowHeaders != "" {
			allowHeaders = cfg.AllowHeaders
		}
		if cfg.AllowCredentials {
			allowCredentials = "true"
		}
		for _, origin := range cfg.AllowOrigins {
			allowed[origin] = true
		}
	}

	return func(ctx context.Context, c *app.RequestContext) {
		origin := string(c.Request.Header.Peek("Origin"))
		if origin != "" && (localOriginRegexp.MatchString(origin) || allowed[origin]) {
			c.Response.Header.Set("Access-Control-Allow-Origin", origin)
			c.Response.Header.Set("Access-Control-Allow-Methods", allowMethods)
			c.Response.Header.Set("Access-Control-Allow-Headers", allowHeaders)
			c.Response.Header.Set("Access-Control-Allow-Credentials", allowCredentials)
			c.Response.Header.Set("Vary", "Origin")
		}

		// Handle preflight requests
		if string(c.Request.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}
