// Package testutil provides shared test utilities for ccnotify tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxytanuki/ccnotify/internal/config"
	"github.com/foxytanuki/ccnotify/internal/constants"
)

// SetupTestConfig points the config and data directories at temp dirs
// and loads the given config content (empty means embedded defaults).
// Returns a cleanup function that should be deferred.
func SetupTestConfig(t *testing.T, configContent string) func() {
	t.Helper()

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	os.Setenv(constants.EnvConfigDir, tmpDir)
	os.Setenv(constants.EnvDataDir, dataDir)

	if configContent != "" {
		configPath := filepath.Join(tmpDir, constants.ConfigFileName)
		if err := os.WriteFile(configPath, []byte(configContent), constants.FileMode); err != nil {
			t.Fatal(err)
		}
	}

	config.Reset()
	config.Init()

	return func() {
		os.Unsetenv(constants.EnvConfigDir)
		os.Unsetenv(constants.EnvDataDir)
		config.Reset()
	}
}
