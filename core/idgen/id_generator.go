// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Make returns a short request ID: a wall-clock prefix for grepping logs
// by time of day, plus 3 bytes of entropy to disambiguate IDs minted
// within the same second.
func Make() string {
	var entropy [3]byte

	_, _ = rand.Read(entropy[:])

	return time.Now().Format("150405") + base64.RawURLEncoding.EncodeToString(entropy[:])
}
