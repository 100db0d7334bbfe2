// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"crypto/tls"
	"net/http"
)

const (
	// clientSessionCacheSize defines the size of the TLS session cache.
	clientSessionCacheSize = 20

	// maxIdleConnsPerHost defines maximum idle connections to keep per host.
	maxIdleConnsPerHost = 20

	// bufferSize defines the read and write buffer size in bytes (32KB).
	bufferSize = 32 * 1024
)

// Transport is the shared transport for all upstream traffic.
//
// Callers that need their own redirect policy or cookie jar build a
// short-lived http.Client around it; the connection pool and TLS session
// cache are still shared that way.
var Transport http.RoundTripper = &http.Transport{
	TLSClientConfig: &tls.Config{
		ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
		MinVersion:         tls.VersionTLS12,
	},
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        0,
	MaxIdleConnsPerHost: maxIdleConnsPerHost,
	WriteBufferSize:     bufferSize,
	ReadBufferSize:      bufferSize,
}

// HTTPClient is a pre-configured http.Client.
var HTTPClient = &http.Client{
	Transport: Transport,
}
