// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	if err := IndexPage(rr, req); err != nil {
		t.Fatalf("IndexPage returned error: %v", err)
	}

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var data IndexResponse
	if err := json.NewDecoder(rr.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode index response: %v", err)
	}

	if !data.Success {
		t.Error("index response success = false, want true")
	}

	// The usage hint carries the relay's own origin
	if !strings.Contains(data.Message, "http://example.com/proxy/image?url=") {
		t.Errorf("index message %q is missing the usage hint", data.Message)
	}
}

func TestIndexPageForwardedProto(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()

	if err := IndexPage(rr, req); err != nil {
		t.Fatalf("IndexPage returned error: %v", err)
	}

	var data IndexResponse
	if err := json.NewDecoder(rr.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode index response: %v", err)
	}

	if !strings.Contains(data.Message, "https://example.com/proxy/image?url=") {
		t.Errorf("index message %q should reflect the forwarded scheme", data.Message)
	}
}
