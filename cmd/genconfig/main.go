// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig regenerates deploy/.env.example from the configuration
// struct, so the template can never drift from the code.
package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	config "codeberg.org/gramrelay/gramrelay/configs"
	"codeberg.org/gramrelay/gramrelay/core/audit"
)

const (
	envOutputFile = "deploy/.env.example"
	filePerm      = 0o644

	envFileHeader = `# gramrelay configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	proxySettingsComment = `
## Network proxy settings
## ref: https://pkg.go.dev/net/http#ProxyFromEnvironment
# HTTPS_PROXY=
# HTTP_PROXY=`
)

func main() {
	audit.SetDefaultLogger()
	generateEnvFile()
}

// generateEnvFile generates the deploy/.env.example file.
func generateEnvFile() {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fieldLines := renderStructFields(structValue)
		if fieldLines == "" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)
		sb.WriteString(fieldLines)
		sb.WriteString("\n")
	}

	sb.WriteString(strings.TrimSpace(proxySettingsComment) + "\n\n")

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// renderStructFields renders every env-tagged field of a nested struct.
func renderStructFields(structValue reflect.Value) string {
	var sb strings.Builder

	innerTyp := structValue.Type()
	for j := range innerTyp.NumField() {
		field := innerTyp.Field(j)
		value := structValue.Field(j)

		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}

		envVarName := strings.Split(tag, ",")[0]

		switch envVarName {
		case "GRAMRELAY_HOST":
			// The listener fields are left empty by SetDefaults so the unix
			// socket conflict check works; uncomment the effective defaults.
			fmt.Fprintf(&sb, "%s=\"%s\"\n", envVarName, config.DefaultHost)
		case "GRAMRELAY_PORT":
			fmt.Fprintf(&sb, "%s=\"%s\"\n", envVarName, config.DefaultPort)
		default:
			// For other fields, comment them out. If the value is a slice
			// or an empty string, omit the value to prompt user input.
			if value.Kind() == reflect.Slice || (value.Kind() == reflect.String && value.Len() == 0) {
				fmt.Fprintf(&sb, "# %s=\n", envVarName)
			} else {
				fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
			}
		}
	}

	return sb.String()
}
