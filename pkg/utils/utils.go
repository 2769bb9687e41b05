package utils

import (
	"os"
	"path/filepath"
)

// CacheDir returns the default location of the local advisory database.
func CacheDir() string {
	tmpDir, err := os.UserCacheDir()
	if err != nil {
		tmpDir = os.TempDir()
	}
	return filepath.Join(tmpDir, "gem-audit")
}
