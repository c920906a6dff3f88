// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Fills unset configuration fields with defaults.

package config

const (
	defaultPanelPosition = "top"
	defaultClockFormat   = "minutes"
	defaultPanelColor    = "0xaa000000"
	defaultTerminal      = "xterm"
)

func applyDefaults(cfg *Config) {
	if cfg.Shell.PanelPosition == "" {
		cfg.Shell.PanelPosition = defaultPanelPosition
	}
	if cfg.Shell.ClockFormat == "" {
		cfg.Shell.ClockFormat = defaultClockFormat
	}
	if cfg.Shell.PanelColor == "" {
		cfg.Shell.PanelColor = defaultPanelColor
	}
	if cfg.Shell.Terminal == "" {
		cfg.Shell.Terminal = defaultTerminal
	}
	if len(cfg.Launchers) == 0 {
		cfg.Launchers = []Launcher{{Icon: ">_", Path: cfg.Shell.Terminal}}
	}
}
