// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package fetch retrieves images from the Instagram/Threads CDNs on behalf
// of clients the CDNs would otherwise refuse.
//
// A fetch validates the URL against the CDN allow-list, draws one identity
// profile for the whole request, then walks a fixed chain of request
// strategies - a full browser fingerprint, a minimal probe, and a
// forwarded-for variant - until one returns a 2xx response. Failures are
// classified into a small error taxonomy the HTTP layer maps onto status
// codes.
package fetch
