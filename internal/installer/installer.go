package installer

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"gcop/internal/cache"
	"gcop/internal/config"
	"gcop/internal/logger"
	"gcop/internal/platform"
	"gcop/internal/system"
)

// markerName is the sidecar file recording which release version the
// cached executable came from.
const markerName = "version"

// Installer ensures a correct-version gcop-rs executable is present in the
// local cache, downloading it when the version marker is absent or stale.
type Installer struct {
	Fs       afero.Fs
	Sys      system.Info
	Client   *http.Client
	Settings config.Settings
}

// New builds an Installer against the real host. The HTTP client follows
// redirects (release hosts commonly redirect asset downloads to a CDN) and
// carries no timeout: large binary transfers finish when they finish.
func New(fs afero.Fs, sys system.Info, settings config.Settings) *Installer {
	return &Installer{
		Fs:       fs,
		Sys:      sys,
		Client:   &http.Client{},
		Settings: settings,
	}
}

// EnsureBinary returns the path of a cached executable matching the
// expected version, fetching it first when needed.
//
// The cache hit path touches no network: when both the binary and the
// version marker exist and the marker's trimmed content equals the expected
// version, the existing path is returned as is. Otherwise the release
// asset is downloaded, made executable on Unix, and the marker rewritten.
// Stale binaries are simply overwritten; there is no eviction.
func (ins *Installer) EnsureBinary(version string) (string, error) {
	target, err := platform.ResolveHost(ins.Sys)
	if err != nil {
		return "", err
	}

	dir, err := ins.ensureCacheDir()
	if err != nil {
		return "", err
	}
	binaryPath := filepath.Join(dir, target.BinaryName)
	markerPath := filepath.Join(dir, markerName)

	if ins.cachedVersionMatches(binaryPath, markerPath, version) {
		logger.Debug("[DEBUG] Cache hit for gcop-rs v%s at %s\n", version, binaryPath)
		return binaryPath, nil
	}

	assetName := expandAssetName(ins.Settings.AssetTemplate, version, target.Suffix)
	url := fmt.Sprintf("%s/v%s/%s", strings.TrimRight(ins.Settings.BaseURL, "/"), version, assetName)

	logger.Info("Downloading gcop-rs v%s for %s...\n", version, target.Suffix)
	if archiveExt(assetName) != "" {
		err = ins.installFromArchive(url, assetName, binaryPath)
	} else {
		err = ins.download(url, binaryPath)
	}
	if err != nil {
		return "", err
	}

	if ins.Sys.OS() != "windows" {
		if err := ins.markExecutable(binaryPath); err != nil {
			return "", err
		}
	}

	if err := afero.WriteFile(ins.Fs, markerPath, []byte(version), 0644); err != nil {
		return "", fmt.Errorf("failed to write version marker %s: %w", markerPath, err)
	}

	logger.Info("Downloaded to %s\n", binaryPath)
	return binaryPath, nil
}

// ensureCacheDir resolves the bin directory the executable lives in. A
// configured cache_dir replaces the platform convention; either way the
// directory is created if missing.
func (ins *Installer) ensureCacheDir() (string, error) {
	if ins.Settings.CacheDir != "" {
		dir := filepath.Join(ins.Settings.CacheDir, "bin")
		if err := ins.Fs.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
		return dir, nil
	}
	return cache.EnsureDir(ins.Fs, ins.Sys)
}

// cachedVersionMatches reports whether the cached binary is already at the
// expected version. The marker content is trimmed before comparison so a
// trailing newline from manual edits does not force a re-download.
func (ins *Installer) cachedVersionMatches(binaryPath, markerPath, version string) bool {
	if ok, err := afero.Exists(ins.Fs, binaryPath); err != nil || !ok {
		return false
	}
	raw, err := afero.ReadFile(ins.Fs, markerPath)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(raw)) == version
}

// markExecutable ORs the executable bits into the file's current mode,
// preserving whatever read/write bits it already has.
func (ins *Installer) markExecutable(path string) error {
	info, err := ins.Fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := ins.Fs.Chmod(path, info.Mode()|0111); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	return nil
}

// expandAssetName fills the {version} and {platform} placeholders of an
// asset template.
func expandAssetName(template, version, suffix string) string {
	name := strings.ReplaceAll(template, "{version}", version)
	return strings.ReplaceAll(name, "{platform}", suffix)
}
