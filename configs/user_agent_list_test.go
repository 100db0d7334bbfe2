// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"slices"
	"testing"
)

func TestGetRandomUserAgent(t *testing.T) {
	t.Parallel()

	// Test that the function returns a non-empty string
	ua := GetRandomUserAgent()
	if ua == "" {
		t.Error("GetRandomUserAgent returned an empty string")
	}

	// Every draw must come from one of the lists
	for range 50 {
		ua := GetRandomUserAgent()

		inDesktopChrome := slices.Contains(desktopChromeAgents, ua)
		inDesktopOther := slices.Contains(desktopOtherAgents, ua)
		inMobile := slices.Contains(mobileAgents, ua)

		if !inDesktopChrome && !inDesktopOther && !inMobile {
			t.Error("GetRandomUserAgent returned a user agent not in any of the available lists")
		}
	}
}

func TestUserAgentPoolSize(t *testing.T) {
	t.Parallel()

	total := len(desktopChromeAgents) + len(desktopOtherAgents) + len(mobileAgents)
	if total < 4 {
		t.Errorf("user agent pool has %d entries, want at least 4", total)
	}
}
