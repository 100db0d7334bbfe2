// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "env-file" flag.
func parseCommandLineArgs() string {
	var envFilePath string

	if flag.Lookup("env-file") == nil {
		flag.StringVar(&envFilePath, "env-file", "", "Path to a .env file to load before reading the environment.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return envFilePath
}
