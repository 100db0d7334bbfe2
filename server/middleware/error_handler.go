// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	config "codeberg.org/gramrelay/gramrelay/configs"
	"codeberg.org/gramrelay/gramrelay/core/audit"
	"codeberg.org/gramrelay/gramrelay/core/fetch"
	"codeberg.org/gramrelay/gramrelay/server/request_context"
	"codeberg.org/gramrelay/gramrelay/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// It operates as follows:
//  1. It times the request for logging purposes.
//  2. It wraps the execution of the given handler, which has the signature
//     `func(w http.ResponseWriter, r *http.Request) error`. The handler's
//     output is buffered using an httptest.ResponseRecorder.
//  3. Any error returned by the handler is stored in the request context.
//
// After the handler runs, it decides on the final response:
//   - If the handler returns a `fetch.Error`, the buffered response is
//     discarded and the error's kind determines the status code and the
//     JSON error body.
//   - If the handler returns a `routes.BadRequestError`, the middleware
//     replies 400 with the error's client message.
//   - If the handler returns any other error without writing an HTTP error
//     status code (i.e., status < 400), it's treated as an unhandled internal
//     error. The buffered response is discarded and a generic 500 JSON error
//     is written instead.
//   - If the handler wrote a 404 Not Found status without returning an error,
//     the buffered body is replaced with the JSON error envelope.
//   - In all other cases (e.g., a successful response), the buffered response
//     is written to the client.
//
// Finally, it logs the completed request details (status, duration, error, etc.)
// via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToClient,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		// Execute the handler, capturing its output and any returned error.
		err := handler(recorder, r)

		ctx.RequestError = err

		var (
			fetchErr  *fetch.Error
			badReqErr *routes.BadRequestError
		)

		switch {
		case errors.As(ctx.RequestError, &fetchErr):
			// The relay could not produce an image. Discard whatever the
			// handler buffered and answer with the kind's status and message.
			ctx.StatusCode = fetchErr.Kind.HTTPStatus()

			routes.WriteError(w, ctx.StatusCode, fetchErr.Kind.Message())

		case errors.As(ctx.RequestError, &badReqErr):
			ctx.StatusCode = http.StatusBadRequest

			routes.WriteError(w, ctx.StatusCode, badReqErr.ClientMessage)

		case ctx.RequestError != nil && recorder.Code < http.StatusBadRequest:
			// An unhandled error occurred. Discard the recorder's contents
			// and reply with a generic error body.
			ctx.StatusCode = http.StatusInternalServerError

			routes.WriteError(w, ctx.StatusCode, "Internal server error")

		case recorder.Code == http.StatusNotFound:
			// A handler wrote a bare 404; its body doesn't fit a JSON API.
			ctx.StatusCode = http.StatusNotFound

			routes.WriteError(w, ctx.StatusCode, "Not found")

		default:
			// This is a successful response or a handled error. We trust the recorder's output.
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			ctx.StatusCode = recorder.Code // Ensure ctx.StatusCode reflects the actual code for logging.
			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		// Log the application response if not excluded.
		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
