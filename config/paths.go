// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for deskshell configuration.

package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const configName = "config.yaml"

// configPath finds an existing config file in the XDG search path, or the
// canonical location for creating one.
func configPath() (string, error) {
	rel := filepath.Join("deskshell", configName)
	if p, err := xdg.SearchConfigFile(rel); err == nil {
		return p, nil
	}
	return xdg.ConfigFile(rel)
}
