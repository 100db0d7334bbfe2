// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	_ "codeberg.org/gramrelay/gramrelay/core/audit" // setup better logging format
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
//
// Everything is sourced from environment variables (optionally via a .env
// file); there is no configuration file. The yaml tags exist only so the
// active configuration can be rendered at startup.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"GRAMRELAY_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"GRAMRELAY_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"GRAMRELAY_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"GRAMRELAY_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"GRAMRELAY_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"GRAMRELAY_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Upstream struct {
		// ProbeStartup enables a concurrent reachability check of the
		// allow-listed CDN hosts right after boot. Log-only.
		ProbeStartup bool `env:"GRAMRELAY_PROBE_UPSTREAM,overwrite" yaml:"probeStartup"`
	} `yaml:"upstream"`

	Instance struct {
		StartingTime string `yaml:"-"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment        bool   `env:"GRAMRELAY_DEV" yaml:"inDevelopment"`
		SaveResponses        bool   `env:"GRAMRELAY_SAVE_RESPONSES,overwrite" yaml:"saveResponses"`
		ResponseSaveLocation string `env:"GRAMRELAY_RESPONSE_SAVE_LOCATION,overwrite" yaml:"responseSaveLocation"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"GRAMRELAY_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"GRAMRELAY_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"GRAMRELAY_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from the environment.
func (cfg *ServerConfig) LoadConfig() error {
	envFilePath := parseCommandLineArgs()

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := useDotEnv(envFilePath); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	// Heuristically check for containerized environment and warn if host is not a wildcard address.
	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// skippedPathPrefixes lists paths whose request spans would only produce
// probe/scrape noise in the logs.
var skippedPathPrefixes = []string{"/health", "/metrics"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range skippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	// Check for a Kubernetes-injected environment variable.
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	// Check for existence of container-specific files.
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if _, err := os.Stat("/.containerenv"); err == nil {
		return true
	}

	// Check the cgroup of the current process.
	// #nosec G304 -- We are checking for the existence and content of a well-known system file for heuristics.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err == nil {
		content := string(cgroup)

		// Check for keywords common in container cgroup paths.
		return strings.Contains(content, "docker") ||
			strings.Contains(content, "kubepods") ||
			strings.Contains(content, "containerd") ||
			strings.Contains(content, "lxc") ||
			strings.Contains(content, "crio") ||
			// systemd-nspawn containers
			strings.Contains(content, ".machine")
	}

	return false
}
