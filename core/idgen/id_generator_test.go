// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"testing"
	"time"
)

func TestMake(t *testing.T) {
	t.Parallel()

	before := time.Now().Format("150405")
	id := Make()
	after := time.Now().Format("150405")

	if len(id) != 10 {
		t.Errorf("Make() = %q, want 6 time characters plus 4 characters of encoded entropy", id)
	}

	if prefix := id[:6]; prefix != before && prefix != after {
		t.Errorf("Make() prefix = %q, want the current wall-clock time (%q or %q)", prefix, before, after)
	}
}

func TestMakeDisambiguatesWithinASecond(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)

	for range 8 {
		id := Make()
		if seen[id] {
			t.Fatalf("Make() minted %q twice", id)
		}

		seen[id] = true
	}
}
