package middleware

import "net/http"

// Middleware processes a request before (or instead of) handing it to next.
//
// Implementations must call next.ServeHTTP exactly once on the passthrough
// path, and not at all once they have written a terminal response.
type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

// Wrap binds a Middleware to a fixed next handler, mostly useful in tests
// that exercise a single middleware outside the router's chain.
func Wrap(m Middleware, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m(w, r, next)
	}
}
