// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"codeberg.org/gramrelay/gramrelay/server/utils"
)

// IndexResponse is the body of the root route.
type IndexResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// IndexPage answers GET / with a usage hint for the relay.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	origin := utils.GetOriginFromRequest(r)

	data := IndexResponse{
		Success: true,
		Message: fmt.Sprintf(
			"Image relay is running. Fetch media via %s/proxy/image?url=<encoded image URL>.",
			origin,
		),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode index response: %w", err)
	}

	return nil
}
