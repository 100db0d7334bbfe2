// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"fmt"
	"math/rand"

	config "codeberg.org/gramrelay/gramrelay/configs"
)

// Profile is the identity a fetch presents to the CDN.
//
// One profile is drawn per fetch and reused across every strategy attempt in
// that fetch, so fallback attempts look like retries from the same browser
// rather than three different visitors.
type Profile struct {
	UserAgent string
}

// NewProfile draws a fresh identity from the user-agent pool.
func NewProfile() Profile {
	return Profile{
		UserAgent: config.GetRandomUserAgent(),
	}
}

const octetRange = 256

// SyntheticIPv4 fabricates a dotted-quad address for forwarded-for
// camouflage. Each octet is drawn independently; the result is not
// guaranteed to be a routable address and doesn't need to be.
func SyntheticIPv4() string {
	// #nosec:G404 // Doesn't need to be crypto secure.
	return fmt.Sprintf("%d.%d.%d.%d",
		rand.Intn(octetRange),
		rand.Intn(octetRange),
		rand.Intn(octetRange),
		rand.Intn(octetRange))
}
