// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Kind classifies a terminal fetch failure.
type Kind int

// The failure taxonomy, in the order the relay reports them.
const (
	KindInvalidURL Kind = iota
	KindNotFound
	KindForbidden
	KindTimeout
	KindUnknown
)

// String returns the snake_case name used for log fields and metric labels.
func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// HTTPStatus returns the status code the relay answers with for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidURL:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing error message for this kind.
//
// These strings are the public API of the relay's error responses; upstream
// details never leak into them.
func (k Kind) Message() string {
	switch k {
	case KindInvalidURL:
		return "Invalid image URL"
	case KindNotFound:
		return "Image not found"
	case KindForbidden:
		return "Access forbidden"
	case KindTimeout:
		return "Request timeout"
	default:
		return "Failed to fetch image"
	}
}

// Error is the terminal error of a fetch: the classified kind plus the
// underlying cause for logs.
type Error struct {
	// Kind is the classification the HTTP layer maps onto a status code.
	Kind Kind

	// Detail optionally carries context such as the offending URL.
	// Never sent to clients.
	Detail string

	// Err is the underlying error cause.
	Err error
}

// Error returns a formatted message including the kind and cause.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	b.WriteString(fmt.Sprintf(" (kind: %s)", e.Kind))

	return b.String()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	errHostNotAllowed      = errors.New("url is not on an allowed CDN host")
	errTooManyRedirects    = errors.New("stopped after too many redirects")
	errUnsupportedEncoding = errors.New("upstream used an encoding we never asked for")
)

// statusError carries a non-2xx upstream status through the strategy chain.
type statusError struct {
	// StatusCode is the upstream HTTP status, always outside the 2xx class.
	StatusCode int

	// Reason is the diagnosed upstream message. Log-only.
	Reason string
}

func (e *statusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Reason)
}

// classify maps the last attempt's error onto the failure taxonomy.
//
// Upstream 401/403 are treated as the CDN refusing us; DNS failures and
// refused connections mean the image's host isn't there to ask; elapsed
// attempt deadlines are timeouts. Everything else - including upstream 404s
// and 5xx - is unknown.
func classify(err error) Kind {
	var stErr *statusError
	if errors.As(err, &stErr) {
		if stErr.StatusCode == http.StatusUnauthorized || stErr.StatusCode == http.StatusForbidden {
			return KindForbidden
		}

		return KindUnknown
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindNotFound
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindUnknown
}
