// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// AddServerTimingHeader writes a Server-Timing header.
func AddServerTimingHeader(w http.ResponseWriter, name string, duration time.Duration, description string) {
	w.Header().Add("Server-Timing", fmt.Sprintf(
		"%s;dur=%s;desc=\"%s\"",
		name,
		strconv.FormatFloat(float64(duration.Nanoseconds())/float64(time.Millisecond), 'f', -1, 64),
		description,
	))
}
