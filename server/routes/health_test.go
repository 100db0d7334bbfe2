// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	if err := HealthCheck(rr, req); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var data HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	assert.Equal(t, "OK", data.Status)

	parsed, err := time.Parse(time.RFC3339, data.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", data.Timestamp, err)
	}

	if _, offset := parsed.Zone(); offset != 0 {
		t.Errorf("timestamp %q is not UTC", data.Timestamp)
	}

	if since := time.Since(parsed); since < 0 || since > time.Minute {
		t.Errorf("timestamp %q is not current (%v old)", data.Timestamp, since)
	}
}
