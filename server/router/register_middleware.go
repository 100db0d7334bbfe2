package router

import (
	"codeberg.org/gramrelay/gramrelay/server/middleware"
	"codeberg.org/gramrelay/gramrelay/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.WithCORS)                    // answers preflights before method matching
	router.Use(middleware.NormalizeURL)                // handle trailing slashes
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all responses need this
}
