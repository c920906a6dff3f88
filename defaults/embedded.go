// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import (
	_ "embed"
)

//go:embed config.yaml
var configYAML []byte

// ConfigYAML returns the embedded default configuration.
func ConfigYAML() []byte {
	return configYAML
}
