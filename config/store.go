// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Loads configuration from disk, seeding defaults on first run.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"deskshell/defaults"
)

// Load reads the configuration at path. An empty path resolves through the
// XDG search path; a missing file there is seeded from the embedded
// defaults. A missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		if werr := seedDefault(path); werr != nil {
			log.WithError(werr).Warn("config: could not write default config")
		}
		data = defaults.ConfigYAML()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	log.WithField("path", path).Info("config: loaded")
	return &cfg, nil
}

func seedDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, defaults.ConfigYAML(), 0o644)
}
