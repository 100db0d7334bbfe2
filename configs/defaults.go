// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// Listener defaults. They are only applied in validateAndSet so that the
// unix socket conflict check sees what the operator actually set, and so
// that a bare PORT variable can still win over DefaultPort.
const (
	DefaultHost = "localhost"
	DefaultPort = "3000"
)

// SetDefaults populates the configuration with default values.
//
// Host and Port are left empty here; validateAndSet fills them so that
// the unix socket listener can detect conflicting settings.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Upstream.ProbeStartup = false

	cfg.Development.SaveResponses = false
	cfg.Development.ResponseSaveLocation = "/tmp/gramrelay/responses"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
