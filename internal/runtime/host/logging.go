// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/host/logging.go
// Summary: Redirects the standard logger away from the terminal while the screen is live.

package hostruntime

import (
	"log"
	"os"
	"path/filepath"

	"github.com/framegrace/texeldock/config"
)

// SetupLogging sends log output to path, or to logs/texeldock.log under
// the config directory when path is empty. The caller closes the file.
func SetupLogging(path string) (*os.File, error) {
	if path == "" {
		root, err := config.Root()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(root, "logs", "texeldock.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
