// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// diagnoseFailure extracts a human-readable reason from an upstream error
// response for logging. The CDNs answer refusals with JSON error payloads or
// HTML interstitial pages depending on which heuristic tripped; both carry a
// hint worth keeping in the logs. Nothing returned here reaches a client.
func diagnoseFailure(statusCode int, contentType string, body []byte) string {
	switch {
	case strings.Contains(contentType, "application/json"):
		if message := gjson.GetBytes(body, "message").String(); message != "" {
			return message
		}
	case strings.Contains(contentType, "text/html"):
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				return title
			}
		}
	}

	// Fall back to the HTTP status text if the body gave nothing usable.
	if text := http.StatusText(statusCode); text != "" {
		return text
	}

	// As a final fallback for unknown status codes, use a generic message.
	return "an unknown upstream error occurred"
}
