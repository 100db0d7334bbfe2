// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"

	"codeberg.org/gramrelay/gramrelay/core/audit"
	"codeberg.org/gramrelay/gramrelay/core/idgen"
	"codeberg.org/gramrelay/gramrelay/core/metrics"
	"codeberg.org/gramrelay/gramrelay/server/request_context"
	"codeberg.org/gramrelay/gramrelay/server/utils"
)

const (
	// attemptTimeout bounds each strategy attempt independently.
	attemptTimeout = 25 * time.Second

	// maxRedirects caps the redirects followed within one attempt.
	maxRedirects = 5

	// defaultContentType is assumed when the CDN omits the header.
	defaultContentType = "image/jpeg"
)

// transport is the round tripper behind every attempt. Tests swap it for a
// fake; production always uses the shared tuned transport.
var transport = utils.Transport

// Result is a successfully fetched image.
type Result struct {
	// ContentType is the upstream media type, defaulted when absent.
	ContentType string

	// Body holds the image bytes exactly as the CDN served them
	// (after undoing any transfer encoding).
	Body []byte
}

// Fetch retrieves the image at rawURL through the strategy fallback chain.
//
// The URL is validated before any network traffic. One identity profile is
// drawn for the whole call; strategies run in fixed order and the first 2xx
// response wins. A non-nil error is always a *Error carrying the classified
// kind of the LAST attempt's failure.
func Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if !ValidURL(rawURL) {
		return nil, &Error{
			Kind:   KindInvalidURL,
			Detail: rawURL,
			Err:    errHostNotAllowed,
		}
	}

	profile := NewProfile()

	// One jar per fetch: interstitial Set-Cookie survives across redirects
	// and strategies within this call, and concurrent fetches share nothing.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, &Error{
			Kind: KindUnknown,
			Err:  fmt.Errorf("failed to create cookie jar: %w", err),
		}
	}

	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}

			return nil
		},
	}

	var lastErr error

	for _, strat := range strategies {
		result, err := doAttempt(ctx, client, strat, rawURL, profile)
		if err == nil {
			return result, nil
		}

		lastErr = err

		log.Debug().
			Err(err).
			Str("strategy", strat.Name).
			Str("url", rawURL).
			Str("request_id", request_context.FromContext(ctx).RequestID).
			Msg("Fetch strategy failed")

		// The caller may have gone away; an elapsed attempt deadline alone
		// does not end the chain, a dead inbound request does.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch aborted: %w", ctx.Err())
		}
	}

	return nil, &Error{
		Kind: classify(lastErr),
		Err:  lastErr,
	}
}

// doAttempt performs one strategy attempt against the CDN.
func doAttempt(
	ctx context.Context,
	client *http.Client,
	strat StrategyDescriptor,
	rawURL string,
	profile Profile,
) (_ *Result, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := strat.buildRequest(attemptCtx, rawURL, profile)
	if err != nil {
		return nil, err
	}

	span := audit.Span{
		Destination: audit.ToUpstream,
		RequestID:   request_context.FromContext(ctx).RequestID + "-" + idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
		Strategy:    strat.Name,
	}

	defer func() { span.Error = err }()

	start := time.Now()

	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailure
		}

		metrics.ObserveFetchAttempt(strat.Name, result, time.Since(start))
	}()

	_ = span.Begin(ctx)
	defer span.End() // in case of error

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Body = body

	span.End()
	span.Log()

	if resp.StatusCode/100 != 2 {
		reason := http.StatusText(resp.StatusCode)
		if decoded, decodeErr := decodeBody(body, resp.Header.Get("Content-Encoding")); decodeErr == nil {
			reason = diagnoseFailure(resp.StatusCode, resp.Header.Get("Content-Type"), decoded)
		}

		return nil, &statusError{StatusCode: resp.StatusCode, Reason: reason}
	}

	decoded, err := decodeBody(body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &Result{ContentType: contentType, Body: decoded}, nil
}
