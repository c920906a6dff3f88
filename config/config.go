// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Typed shell configuration and value parsing.

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the full on-disk configuration.
type Config struct {
	Shell     Shell      `yaml:"shell"`
	Launchers []Launcher `yaml:"launchers"`
}

// Shell holds the desktop-wide settings.
type Shell struct {
	PanelPosition   string `yaml:"panel-position"`
	ClockFormat     string `yaml:"clock-format"`
	PanelColor      string `yaml:"panel-color"`
	BackgroundImage string `yaml:"background-image"`
	BackgroundColor string `yaml:"background-color"`
	BackgroundType  string `yaml:"background-type"`
	Locking         *bool  `yaml:"locking"`
	Terminal        string `yaml:"terminal"`
}

// Launcher describes one panel launcher: a short label and the command it
// runs. The path may carry NAME=value environment assignments before the
// executable and arguments after it.
type Launcher struct {
	Icon string `yaml:"icon"`
	Path string `yaml:"path"`
}

// LockingEnabled reports whether screen locking is on. Unset means on.
func (s *Shell) LockingEnabled() bool {
	return s.Locking == nil || *s.Locking
}

// ParseColor reads a 32-bit ARGB color written as hex, with or without a
// leading "0x". The empty string parses to zero.
func ParseColor(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
