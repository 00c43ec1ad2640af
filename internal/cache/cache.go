package cache

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"gcop/internal/logger"
	"gcop/internal/system"
)

// subDir is the fixed segment identifying this tool under the platform
// cache root. The executable and its version marker live in its bin/
// directory.
const subDir = "gcop-rs"

// Dir computes the directory the cached binary and version marker are
// stored in, following each platform's cache directory convention:
//
//	windows: %LOCALAPPDATA%\gcop-rs\bin  (fallback <home>\AppData\Local)
//	darwin:  <home>/Library/Caches/gcop-rs/bin
//	other:   $XDG_CACHE_HOME/gcop-rs/bin (fallback <home>/.cache)
//
// Dir only computes the path; EnsureDir also creates it. The GCOP_CACHE_DIR
// override is resolved a level up, in the wrapper settings.
func Dir(sys system.Info) (string, error) {
	root, err := rootDir(sys)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, subDir, "bin"), nil
}

// EnsureDir computes the cache directory and creates it, parents included.
// Creation is idempotent; an existing directory is not an error.
func EnsureDir(fs afero.Fs, sys system.Info) (string, error) {
	dir, err := Dir(sys)
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	logger.Debug("[DEBUG] Cache directory: %s\n", dir)
	return dir, nil
}

// rootDir resolves the platform-conventional cache root.
func rootDir(sys system.Info) (string, error) {
	switch sys.OS() {
	case "windows":
		if dir := sys.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		home, err := sys.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, "AppData", "Local"), nil
	case "darwin":
		home, err := sys.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Caches"), nil
	default:
		// Linux and other Unix follow the XDG convention.
		if dir := sys.Getenv("XDG_CACHE_HOME"); dir != "" {
			return dir, nil
		}
		home, err := sys.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, ".cache"), nil
	}
}
