// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"os"
	"os/user"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errInvalidPort                  = errors.New("invalid Basic.Port value: must be numeric")
	errEmptyResponseSaveLocation    = errors.New("ResponseSaveLocation cannot be empty when SaveResponses is enabled")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	// Handle listener configuration
	if cfg.Basic.UnixSocket != "" {
		if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
			return errUnixSocketWithHostPort
		}

		// Handle unix socket permissions
		switch {
		case cfg.Basic.RawUnixSocketPermissions == "":
			cfg.Basic.UnixSocketPermissions = 0o666
		case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			rawModeUint64, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

			cfg.Basic.UnixSocketPermissions = os.FileMode(rawModeUint64)
		case fileModeStringRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			mode := os.FileMode(0)

			for i, c := range cfg.Basic.RawUnixSocketPermissions {
				// If permission bit is set
				if c != '-' {
					// Set i-th bit from the end
					const bitsInByte = 8

					mode |= 1 << (bitsInByte - i)
				}
			}

			cfg.Basic.UnixSocketPermissions = mode
		default:
			return errUnixSocketInvalidPermissions
		}

		// Check if user is valid
		if cfg.Basic.UnixSocketUser != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketUser) {
				if _, err := user.LookupId(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			} else {
				if _, err := user.Lookup(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			}
		}

		// Check if group is valid
		if cfg.Basic.UnixSocketGroup != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketGroup) {
				if _, err := user.LookupGroupId(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			} else {
				if _, err := user.LookupGroup(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			}
		}
	} else {
		// Set TCP defaults
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = DefaultHost
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			// A bare PORT variable (the convention most PaaS runtimes
			// inject) is honored before falling back to the default.
			if port := os.Getenv("PORT"); port != "" {
				cfg.Basic.Port = port
				log.Info().
					Str("port", cfg.Basic.Port).
					Msg("Using port from PORT environment variable")
			} else {
				cfg.Basic.Port = DefaultPort
				log.Info().
					Str("port", cfg.Basic.Port).
					Msg("Using default port")
			}
		}

		if !digitsRegexp.MatchString(cfg.Basic.Port) {
			return errInvalidPort
		}
	}

	if cfg.Development.SaveResponses && cfg.Development.ResponseSaveLocation == "" {
		return errEmptyResponseSaveLocation
	}

	return nil
}
