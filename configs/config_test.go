// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"testing"
)

/*
TestLoadConfig focuses on verifying main functionality (e.g. fallback when invalid input),
and *shouldn't* need exhaustive scenarios.

t.Setenv is incompatible with t.Parallel, so these cases run sequentially.
*/

// TestLoadConfig is a test function that verifies the behavior of the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	// Helper function to set environment variables
	setEnv := func(t *testing.T, env map[string]string) {
		for k, v := range env {
			t.Setenv(k, v)
		}
	}

	tests := []struct {
		name     string            // Description of the test case
		env      map[string]string // Name of the environment variable and its value
		wantErr  bool              // Whether an error is expected
		wantHost string            // Expected Basic.Host, empty to skip
		wantPort string            // Expected Basic.Port, empty to skip
	}{
		{
			name: "Valid configuration",
			env: map[string]string{
				"GRAMRELAY_HOST": "0.0.0.0",
				"GRAMRELAY_PORT": "8282",
			},
			wantErr:  false,
			wantHost: "0.0.0.0",
			wantPort: "8282",
		},
		{
			name: "Defaults applied when nothing is set",
			env: map[string]string{
				"PORT": "",
			},
			wantErr:  false,
			wantHost: "localhost",
			wantPort: "3000",
		},
		{
			name: "Bare PORT variable is honored",
			env: map[string]string{
				"PORT": "4567",
			},
			wantErr:  false,
			wantHost: "localhost",
			wantPort: "4567",
		},
		{
			name: "GRAMRELAY_PORT wins over bare PORT",
			env: map[string]string{
				"GRAMRELAY_PORT": "9090",
				"PORT":           "4567",
			},
			wantErr:  false,
			wantPort: "9090",
		},
		{
			name: "Invalid GRAMRELAY_PORT",
			env: map[string]string{
				"GRAMRELAY_PORT": "80a80",
			},
			wantErr: true,
		},
		{
			name: "Unix socket conflicts with host and port",
			env: map[string]string{
				"GRAMRELAY_UNIXSOCKET": "/tmp/gramrelay-test.sock",
				"GRAMRELAY_HOST":       "localhost",
			},
			wantErr: true,
		},
		{
			name: "Invalid unix socket permissions",
			env: map[string]string{
				"GRAMRELAY_UNIXSOCKET":             "/tmp/gramrelay-test.sock",
				"GRAMRELAY_UNIXSOCKET_PERMISSIONS": "not-a-mode",
			},
			wantErr: true,
		},
		{
			name: "SaveResponses without a save location",
			env: map[string]string{
				"GRAMRELAY_SAVE_RESPONSES":         "true",
				"GRAMRELAY_RESPONSE_SAVE_LOCATION": "",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up environment; t.Setenv restores old values on cleanup
			setEnv(t, tt.env)

			// Create a new ServerConfig instance
			config := &ServerConfig{}

			// Call LoadConfig
			err := config.LoadConfig()

			// Check for errors
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr {
				return
			}

			if tt.wantHost != "" && config.Basic.Host != tt.wantHost {
				t.Errorf("LoadConfig() Host = %v, want %v", config.Basic.Host, tt.wantHost)
			}

			if tt.wantPort != "" && config.Basic.Port != tt.wantPort {
				t.Errorf("LoadConfig() Port = %v, want %v", config.Basic.Port, tt.wantPort)
			}

			if config.Log.Level == "" {
				t.Error("LoadConfig() Log.Level is empty")
			}
		})
	}
}
