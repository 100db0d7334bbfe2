// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
		shouldRedirect   bool
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/proxy/image",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/proxy/image/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/proxy/image",
			shouldRedirect:   true,
		},
		{
			name:             "Health path with trailing slash should redirect",
			requestURL:       "/health/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/health",
			shouldRedirect:   true,
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/proxy/image/?url=https%3A%2F%2Fscontent.cdninstagram.com%2Ffoo.jpg",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/proxy/image?url=https%3A%2F%2Fscontent.cdninstagram.com%2Ffoo.jpg",
			shouldRedirect:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Create a test handler that returns 200 OK
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			// Wrap with our middleware
			handler := Wrap(NormalizeURL, nextHandler)

			// Create test request
			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			w := httptest.NewRecorder()

			// Execute request
			handler.ServeHTTP(w, req)

			// Check status code
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			// Check redirect location if expected
			if tt.shouldRedirect {
				location := w.Header().Get("Location")
				if location != tt.expectedLocation {
					t.Errorf("Expected location %q, got %q", tt.expectedLocation, location)
				}
			} else {
				// Should not have Location header if not redirecting
				if location := w.Header().Get("Location"); location != "" {
					t.Errorf("Expected no Location header, got %q", location)
				}
			}
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false},            // Root should not be considered as having trailing slash
		{"/health", false},      // No trailing slash
		{"/health/", true},      // Has trailing slash
		{"/proxy/image/", true}, // Has trailing slash
		{"/proxy/image", false}, // No trailing slash
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			result := hasTrailingSlash(req)
			if result != tt.expected {
				t.Errorf("hasTrailingSlash(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}
