// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"

	config "codeberg.org/gramrelay/gramrelay/configs"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Gramrelay-Version and Gramrelay-Revision are added dynamically in SetResponseHeaders.
	//
	// The service only ever serves JSON and image bytes, so the CSP can
	// deny everything.
	//
	// NOTE: we intentionally don't set CORP or HSTS headers.
	baseHeaders = http.Header{
		"Referrer-Policy":         {"no-referrer"},
		"X-Frame-Options":         {"DENY"},
		"X-Content-Type-Options":  {"nosniff"},
		"Content-Security-Policy": {"default-src 'none'"},
		"Permissions-Policy":      {strings.Join(defaultPermissionsPolicy, ", ")},
		"X-Powered-By":            {"gramrelay"},
	}

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"ambient-light-sensor=()",
		"battery=()",
		"camera=()",
		"display-capture=()",
		"document-domain=()",
		"encrypted-media=()",
		"execution-while-not-rendered=()",
		"execution-while-out-of-viewport=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"midi=()",
		"navigation-override=()",
		"payment=()",
		"publickey-credentials-get=()",
		"screen-wake-lock=()",
		"sync-xhr=()",
		"usb=()",
		"web-share=()",
		"xr-spatial-tracking=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r.URL.Path)

	headers.Set("Gramrelay-Version", config.BuildVersion)
	headers.Set("Gramrelay-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

// for `invalidateCache`
var firstDevResponse = true

// clear cache in development
//
// Relayed images carry a long public max-age, which gets in the way when
// iterating on header changes locally.
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse {
		firstDevResponse = false

		headers.Set("Clear-Site-Data", "cache")
	}
}

// setCacheControl sets the cache policy for a path. The relay route
// overwrites this for successful image responses, so only error replies
// and the JSON endpoints keep the default.
func setCacheControl(headers http.Header, path string) {
	// Default to only storing in the browser cache and forcing revalidation
	cacheDuration := "private, no-cache"

	// Probe and scrape responses are point-in-time; never reuse them.
	if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics") {
		cacheDuration = "no-store"
	}

	headers.Set("Cache-Control", cacheDuration)
}
