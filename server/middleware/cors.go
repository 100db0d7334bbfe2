// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"net/http"

	"github.com/jub0bs/cors"
)

// corsMiddleware allows anonymous cross-origin reads. The relay serves
// public CDN content, so any origin may embed it.
var corsMiddleware = func() *cors.Middleware {
	mw, err := cors.NewMiddleware(cors.Config{
		Origins: []string{"*"},
		Methods: []string{http.MethodGet},
	})
	if err != nil {
		panic(fmt.Errorf("failed to build the CORS middleware: %w", err))
	}

	return mw
}()

// WithCORS answers preflights and sets the CORS response headers. It must
// wrap the whole chain so OPTIONS requests never reach the method-scoped
// mux patterns.
func WithCORS(w http.ResponseWriter, r *http.Request, next http.Handler) {
	corsMiddleware.Wrap(next).ServeHTTP(w, r)
}
