// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"fmt"
	"net/http"
)

// Referer/Origin values presented to the CDN.
const (
	refererInstagram = "https://www.instagram.com/"
	refererFacebook  = "https://www.facebook.com/"
	originInstagram  = "https://www.instagram.com"
)

// StrategyDescriptor describes one fixed way of asking the CDN for an image.
type StrategyDescriptor struct {
	// Order is the 1-based position in the fallback chain.
	Order int

	// Name feeds log fields and metric labels.
	Name string

	// HeaderSet holds the static headers this strategy sends. The
	// User-Agent is not part of the set; it comes from the fetch's Profile.
	HeaderSet map[string]string

	// SyntheticIP adds a freshly fabricated X-Forwarded-For per attempt.
	SyntheticIP bool
}

// strategies is the fallback chain, tried in slice order. The chain and the
// header sets are fixed at process start and never mutated.
var strategies = []StrategyDescriptor{
	{
		Order: 1,
		Name:  "browser",
		HeaderSet: map[string]string{
			"Accept":             "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8",
			"Accept-Language":    "en-US,en;q=0.9",
			"Accept-Encoding":    "gzip, deflate, br, zstd",
			"Sec-Fetch-Dest":     "image",
			"Sec-Fetch-Mode":     "no-cors",
			"Sec-Fetch-Site":     "cross-site",
			"Sec-Ch-Ua":          `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`,
			"Sec-Ch-Ua-Mobile":   "?0",
			"Sec-Ch-Ua-Platform": `"Windows"`,
			"Cache-Control":      "no-cache",
			"Referer":            refererInstagram,
			"Origin":             originInstagram,
		},
	},
	{
		Order: 2,
		Name:  "minimal",
		HeaderSet: map[string]string{
			"Accept":  "image/*,*/*;q=0.8",
			"Referer": refererInstagram,
		},
	},
	{
		Order: 3,
		Name:  "forwarded",
		HeaderSet: map[string]string{
			"Accept":  "image/*,*/*;q=0.8",
			"Referer": refererFacebook,
		},
		SyntheticIP: true,
	},
}

// buildRequest materializes the GET request for one attempt.
func (s StrategyDescriptor) buildRequest(
	ctx context.Context,
	rawURL string,
	profile Profile,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", profile.UserAgent)

	for name, value := range s.HeaderSet {
		req.Header.Set(name, value)
	}

	if s.SyntheticIP {
		req.Header.Set("X-Forwarded-For", SyntheticIPv4())
	}

	return req, nil
}
