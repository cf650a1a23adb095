// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package internal contains helpers shared by the brokenlink packages and
// the command line.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile return the path to the configuration file under
// [os.UserConfigDir] + "brokenlink" directory.
// This variable defined here so the test file can override it.
var ConfigFile = DefaultConfigFile

// DefaultConfigFile return the path to "brokenlink/config.yaml" inside the
// user configuration directory.
// The file may not exist.
func DefaultConfigFile() (configFile string, err error) {
	var logp = `DefaultConfigFile`
	var configDir string

	configDir, err = os.UserConfigDir()
	if err != nil {
		return ``, fmt.Errorf(`%s: %w`, logp, err)
	}

	configFile = filepath.Join(configDir, `brokenlink`, `config.yaml`)
	return configFile, nil
}
