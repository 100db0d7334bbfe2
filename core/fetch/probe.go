// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/gramrelay/gramrelay/server/utils"
)

// probeTimeout bounds the whole startup reachability sweep.
const probeTimeout = 10 * time.Second

// probeTargets are representative hosts from the allow-list. Regional
// wildcards like fbcdn.net don't resolve bare, so only the concrete
// frontends are probed.
var probeTargets = []string{
	"https://scontent.cdninstagram.com/",
	"https://www.instagram.com/",
	"https://www.threads.net/",
}

// ProbeUpstream checks that the allow-listed CDN frontends are reachable.
//
// Purely informational: a failed probe is logged and otherwise ignored, since
// CDN heuristics routinely refuse unadorned requests that real fetches would
// get through. The sweep runs concurrently and returns when every probe has
// reported.
func ProbeUpstream(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for _, target := range probeTargets {
		g.Go(func() error {
			start := time.Now()

			req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
			if err != nil {
				return nil //nolint:nilerr // a malformed probe is not worth failing the sweep over
			}

			resp, err := utils.HTTPClient.Do(req)
			if err != nil {
				log.Warn().
					Err(err).
					Str("target", target).
					Msg("Upstream probe failed")

				return nil //nolint:nilerr // probes are informational
			}
			defer resp.Body.Close()

			log.Info().
				Str("target", target).
				Int("status_code", resp.StatusCode).
				Dur("dur", time.Since(start)).
				Msg("Upstream probe finished")

			return nil
		})
	}

	_ = g.Wait()
}
