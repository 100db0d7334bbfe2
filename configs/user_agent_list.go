// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
These user-agents are copied manually from https://github.com/spider-rs/ua_generator
*/
package config

import "math/rand"

var desktopChromeAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
}

var desktopOtherAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:137.0) Gecko/20100101 Firefox/137.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.3 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36 Edg/135.0.0.0",
}

var mobileAgents = []string{
	"Mozilla/5.0 (iPhone; CPU iPhone OS 18_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.3 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Linux; Android 15; Pixel 9) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Mobile Safari/537.36",
	"Mozilla/5.0 (Linux; Android 14; SM-S921B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Mobile Safari/537.36",
}

const (
	classDesktopChrome = iota
	classDesktopOther
	classMobile
	numAgentClasses
)

// GetRandomUserAgent returns a random user agent from any of the available classes.
func GetRandomUserAgent() string {
	// Select which class of user agents to use
	class := rand.Intn(numAgentClasses) // #nosec:G404 // Doesn't need to be crypto secure.

	var selectedAgents []string

	switch class {
	case classDesktopChrome:
		selectedAgents = desktopChromeAgents
	case classDesktopOther:
		selectedAgents = desktopOtherAgents
	case classMobile:
		selectedAgents = mobileAgents
	}

	// Select a user agent from the chosen class
	return selectedAgents[rand.Intn(len(selectedAgents))] // #nosec:G404 // Doesn't need to be crypto secure.
}
