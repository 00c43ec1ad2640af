package platform

import (
	"errors"
	"fmt"
	"strings"

	"gcop/internal/system"
)

// The release pipeline publishes one pre-built gcop-rs executable per
// (operating system, architecture) pair. This package maps the raw strings
// a host reports onto the release asset naming scheme. The mapping is
// total over the supported matrix and fails hard everywhere else; there is
// no fallback platform.

var (
	// ErrUnsupportedArch means the reported CPU architecture has no
	// published release asset.
	ErrUnsupportedArch = errors.New("unsupported architecture")

	// ErrUnsupportedOS means the reported operating system has no
	// published release asset.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// Target identifies the release asset and local executable name for one
// supported platform.
type Target struct {
	// Suffix is the platform part of the release asset name,
	// e.g. "macos-arm64" or "windows-amd64.exe".
	Suffix string
	// BinaryName is the filename the executable is cached under,
	// "gcop-rs" on Unix and "gcop-rs.exe" on Windows.
	BinaryName string
}

// Resolve maps raw operating system and machine architecture strings onto
// the release asset naming scheme. Inputs are compared case-insensitively,
// so values like "Darwin" or "AMD64" reported by other tooling resolve the
// same way as Go's runtime constants.
//
// Resolve is a pure function: no side effects, same output for same input.
func Resolve(osName, arch string) (Target, error) {
	arch = strings.ToLower(arch)
	switch arch {
	case "x86_64", "amd64":
		arch = "amd64"
	case "arm64", "aarch64":
		arch = "arm64"
	default:
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedArch, arch)
	}

	switch strings.ToLower(osName) {
	case "darwin":
		return Target{Suffix: "macos-" + arch, BinaryName: "gcop-rs"}, nil
	case "linux":
		return Target{Suffix: "linux-" + arch, BinaryName: "gcop-rs"}, nil
	case "windows":
		// Windows assets use the pipeline's raw aarch64 spelling.
		suffix := "windows-amd64.exe"
		if arch == "arm64" {
			suffix = "windows-aarch64.exe"
		}
		return Target{Suffix: suffix, BinaryName: "gcop-rs.exe"}, nil
	default:
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedOS, osName)
	}
}

// ResolveHost resolves the platform the given host reports.
func ResolveHost(sys system.Info) (Target, error) {
	return Resolve(sys.OS(), sys.Arch())
}
