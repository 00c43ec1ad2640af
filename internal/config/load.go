package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"gcop/internal/logger"
	"gcop/internal/system"
)

// Load reads the optional wrapper settings file and applies environment
// overrides on top. Resolution order, later entries winning:
//
//	built-in defaults
//	settings file ($GCOP_WRAPPER_CONFIG, else the conventional path)
//	GCOP_RELEASE_BASE_URL, GCOP_VERSION, GCOP_CACHE_DIR
//
// A missing file yields the defaults. A file that exists and fails to read
// or parse is a fatal configuration error.
func Load(fs afero.Fs, sys system.Info) (Settings, error) {
	settings := Settings{
		BaseURL:       DefaultBaseURL,
		AssetTemplate: DefaultAssetTemplate,
	}

	path := settingsPath(sys)
	raw, err := afero.ReadFile(fs, path)
	switch {
	case os.IsNotExist(err):
		logger.Debug("[DEBUG] No wrapper settings at %s, using defaults\n", path)
	case err != nil:
		return Settings{}, fmt.Errorf("failed to read wrapper settings %s: %w", path, err)
	default:
		var file struct {
			Wrapper Settings `yaml:"wrapper"`
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Settings{}, fmt.Errorf("failed to parse wrapper settings %s: %w", path, err)
		}
		logger.Debug("[DEBUG] Loaded wrapper settings from %s\n", path)
		merge(&settings, file.Wrapper)
	}

	merge(&settings, Settings{
		BaseURL:  sys.Getenv("GCOP_RELEASE_BASE_URL"),
		Version:  sys.Getenv("GCOP_VERSION"),
		CacheDir: sys.Getenv("GCOP_CACHE_DIR"),
	})
	return settings, nil
}

// merge overlays the non-empty fields of src onto dst.
func merge(dst *Settings, src Settings) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Version != "" {
		dst.Version = src.Version
	}
	if src.CacheDir != "" {
		dst.CacheDir = src.CacheDir
	}
	if src.AssetTemplate != "" {
		dst.AssetTemplate = src.AssetTemplate
	}
}

// settingsPath resolves the settings file location: an explicit
// GCOP_WRAPPER_CONFIG wins, otherwise the platform config convention
// (AppData\Roaming on Windows, Library/Application Support on macOS, XDG
// config home elsewhere) plus the fixed gcop-rs/wrapper.yaml subpath.
func settingsPath(sys system.Info) string {
	if p := sys.Getenv("GCOP_WRAPPER_CONFIG"); p != "" {
		return p
	}

	home, err := sys.UserHomeDir()
	if err != nil {
		// Without a home directory there is no conventional path to try;
		// the open below will simply miss and defaults apply.
		home = "."
	}

	var root string
	switch sys.OS() {
	case "windows":
		root = sys.Getenv("APPDATA")
		if root == "" {
			root = filepath.Join(home, "AppData", "Roaming")
		}
	case "darwin":
		root = filepath.Join(home, "Library", "Application Support")
	default:
		root = sys.Getenv("XDG_CONFIG_HOME")
		if root == "" {
			root = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(root, "gcop-rs", "wrapper.yaml")
}
