// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of gramrelay.
const BuildVersion string = "v1.0.3"

type buildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision renders the VCS state as "<date>-<short rev>", with a "+dirty"
// suffix for builds from a modified tree.
func (b *buildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	date, _, _ := strings.Cut(b.VcsTime, "T")

	rev := b.VcsRevision
	if len(rev) > 8 {
		rev = rev[:8]
	}

	s := date + "-" + rev
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

func (b *buildInfo) load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(info.Settings))
	for _, kv := range info.Settings {
		settings[kv.Key] = kv.Value
	}

	b.VcsRevision = settings["vcs.revision"]
	b.VcsTime = settings["vcs.time"]
	b.VcsModified = settings["vcs.modified"] == "true"
}
