// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/gramrelay/gramrelay/core/fetch"
)

// swapFetch replaces the fetch pipeline for a test.
//
// Tests that call it must not run in parallel; they mutate package state.
func swapFetch(t *testing.T, fake func(ctx context.Context, rawURL string) (*fetch.Result, error)) {
	t.Helper()

	orig := fetchImage
	fetchImage = fake

	t.Cleanup(func() { fetchImage = orig })
}

func TestRelayImage_MissingParameter(t *testing.T) {
	swapFetch(t, func(context.Context, string) (*fetch.Result, error) {
		t.Error("the pipeline must not run without a url parameter")

		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/proxy/image", nil)
	rr := httptest.NewRecorder()

	err := RelayImage(rr, req)

	var badReqErr *BadRequestError
	if !errors.As(err, &badReqErr) {
		t.Fatalf("RelayImage returned %v, want a BadRequestError", err)
	}

	assert.Equal(t, "URL parameter is required", badReqErr.ClientMessage)
}

func TestRelayImage_EmptyParameter(t *testing.T) {
	swapFetch(t, func(context.Context, string) (*fetch.Result, error) {
		t.Error("the pipeline must not run with an empty url parameter")

		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/proxy/image?url=", nil)
	rr := httptest.NewRecorder()

	err := RelayImage(rr, req)

	var badReqErr *BadRequestError
	if !errors.As(err, &badReqErr) {
		t.Fatalf("RelayImage returned %v, want a BadRequestError", err)
	}
}

func TestRelayImage_Success(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	swapFetch(t, func(_ context.Context, rawURL string) (*fetch.Result, error) {
		// The query parameter arrives percent-decoded
		if rawURL != "https://scontent.cdninstagram.com/foo.jpg?sig=abc" {
			t.Errorf("pipeline received url %q", rawURL)
		}

		return &fetch.Result{ContentType: "image/webp", Body: imageBytes}, nil
	})

	target := "/proxy/image?url=" + "https%3A%2F%2Fscontent.cdninstagram.com%2Ffoo.jpg%3Fsig%3Dabc"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()

	if err := RelayImage(rr, req); err != nil {
		t.Fatalf("RelayImage returned error: %v", err)
	}

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/webp", rr.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", rr.Header().Get("Cache-Control"))

	if !bytes.Equal(rr.Body.Bytes(), imageBytes) {
		t.Error("response body is not byte-identical to the pipeline result")
	}

	if !strings.Contains(rr.Header().Get("Server-Timing"), "fetch-total") {
		t.Errorf("Server-Timing %q is missing the fetch-total metric", rr.Header().Get("Server-Timing"))
	}
}

func TestRelayImage_FetchFailurePropagates(t *testing.T) {
	swapFetch(t, func(context.Context, string) (*fetch.Result, error) {
		return nil, &fetch.Error{Kind: fetch.KindForbidden, Err: errors.New("upstream said no")}
	})

	req := httptest.NewRequest(http.MethodGet, "/proxy/image?url=https%3A%2F%2Fscontent.cdninstagram.com%2Ffoo.jpg", nil)
	rr := httptest.NewRecorder()

	err := RelayImage(rr, req)

	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("RelayImage returned %v, want the pipeline's error", err)
	}

	assert.Equal(t, fetch.KindForbidden, fetchErr.Kind)

	// The handler writes nothing itself; the error middleware owns the body.
	if rr.Body.Len() != 0 {
		t.Errorf("handler wrote %q on the failure path", rr.Body.String())
	}
}

func TestRelayImage_CanceledCallerIsSilent(t *testing.T) {
	swapFetch(t, func(ctx context.Context, _ string) (*fetch.Result, error) {
		return nil, fmt.Errorf("fetch aborted: %w", context.Canceled)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/proxy/image?url=https%3A%2F%2Fscontent.cdninstagram.com%2Ffoo.jpg", nil)
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()

	if err := RelayImage(rr, req); err != nil {
		t.Errorf("RelayImage returned %v for a caller that went away, want nil", err)
	}
}
