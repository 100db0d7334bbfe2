// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"

	"codeberg.org/gramrelay/gramrelay/server/middleware"
)

// Router wraps http.ServeMux and provides middleware chaining functionality.
type Router struct {
	*http.ServeMux

	middlewares []middleware.Middleware
}

// NewRouter creates a new Router instance.
func NewRouter() *Router {
	return &Router{
		ServeMux: http.NewServeMux(),
	}
}

// Use adds a middleware to the router's chain.
//
// The first middleware added is the outermost, i.e. the first to see the
// request and the last to see the response.
func (router *Router) Use(m middleware.Middleware) {
	router.middlewares = append(router.middlewares, m)
}

// ServeHTTP composes the chain inside-out around the mux and runs it.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var next http.Handler = router.ServeMux

	for i := len(router.middlewares) - 1; i >= 0; i-- {
		m, inner := router.middlewares[i], next
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m(w, r, inner)
		})
	}

	next.ServeHTTP(w, r)
}
