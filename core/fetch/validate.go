// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"net/url"
	"strings"
)

// allowedHosts lists the hostnames the relay is willing to fetch from.
var allowedHosts = []string{
	"scontent.cdninstagram.com",
	"instagram.com",
	"threads.net",
	"fbcdn.net",
	"scontent.xx.fbcdn.net",
}

// ValidURL reports whether rawURL points at an allowed CDN host.
//
// Matching is deliberately loose: a hostname is accepted when it contains or
// ends with one of the allowed entries, which admits regional CDN shards
// such as scontent-iad3-1.cdninstagram.com without enumerating them.
// Unparseable URLs and URLs without a hostname are rejected, never errors.
func ValidURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return false
	}

	for _, allowed := range allowedHosts {
		if strings.Contains(hostname, allowed) || strings.HasSuffix(hostname, allowed) {
			return true
		}
	}

	return false
}
