// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// decodeBody undoes the Content-Encoding of an upstream response.
//
// The browser strategy advertises its own Accept-Encoding, which switches
// off Go's transparent gzip handling, so every encoding we offer has to be
// decoded here. Strategies that don't set Accept-Encoding arrive already
// decoded with an empty encoding header.
func decodeBody(body []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", "identity":
		return body, nil
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to decode gzip body: %w", err)
		}
		defer reader.Close()

		decoded, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gzip body: %w", err)
		}

		return decoded, nil
	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decoded, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode deflate body: %w", err)
		}

		return decoded, nil
	case "br":
		decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode brotli body: %w", err)
		}

		return decoded, nil
	case "zstd":
		decoder, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to decode zstd body: %w", err)
		}
		defer decoder.Close()

		decoded, err := io.ReadAll(decoder)
		if err != nil {
			return nil, fmt.Errorf("failed to decode zstd body: %w", err)
		}

		return decoded, nil
	default:
		// We never advertised this encoding; serving the bytes as-is would
		// hand the client an undecodable body.
		return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, encoding)
	}
}
