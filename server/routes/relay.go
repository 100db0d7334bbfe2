// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"codeberg.org/gramrelay/gramrelay/core/fetch"
	"codeberg.org/gramrelay/gramrelay/core/metrics"
	"codeberg.org/gramrelay/gramrelay/server/utils"
)

// relayCacheControl is sent with successful image responses. CDN media URLs
// are immutable, so a day of shared caching is safe.
const relayCacheControl = "public, max-age=86400"

// fetchImage is swapped out in tests.
var fetchImage = fetch.Fetch

// RelayImage handles GET /proxy/image.
//
// The target URL arrives percent-encoded in the url query parameter. The
// fetch pipeline does the real work; this handler only translates its
// outcome into a response. Failures are returned for the error handling
// middleware to map onto a status code and JSON body.
func RelayImage(w http.ResponseWriter, r *http.Request) error {
	rawURL := utils.GetQueryParam(r, "url")
	if rawURL == "" {
		metrics.ObserveRelayRequest("missing_parameter")

		return NewBadRequestError("URL parameter is required")
	}

	start := time.Now()

	result, err := fetchImage(r.Context(), rawURL)

	utils.AddServerTimingHeader(w, "fetch-total", time.Since(start), "Total upstream fetch time")

	if err != nil {
		if isContextCanceled(r, err) {
			metrics.ObserveRelayRequest("canceled")

			return nil
		}

		metrics.ObserveRelayRequest(relayOutcome(err))

		return err
	}

	metrics.ObserveRelayRequest(metrics.ResultSuccess)

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Cache-Control", relayCacheControl)

	if _, err := w.Write(result.Body); err != nil {
		return fmt.Errorf("failed to write image body: %w", err)
	}

	return nil
}

// relayOutcome names the metric label for a failed relay request.
func relayOutcome(err error) string {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind.String()
	}

	return metrics.ResultFailure
}

// isContextCanceled reports whether the fetch failed because the caller went
// away rather than because the upstream misbehaved. Nothing we write after
// that will arrive, so the handler gives up silently.
func isContextCanceled(r *http.Request, err error) bool {
	return r.Context().Err() != nil &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
