package system

import (
	"os"
	"runtime"
)

// Info describes the ambient host facts the wrapper consults: platform
// identification plus the environment and home directory used to locate
// cache and config roots. Modelling this as an interface keeps platform
// resolution and directory layout deterministic under test, where a Static
// value stands in for the real host.
type Info interface {
	// OS returns the operating system name, e.g. "darwin", "linux", "windows".
	OS() string
	// Arch returns the CPU architecture, e.g. "amd64", "arm64".
	Arch() string
	// Getenv returns the value of an environment variable, "" when unset.
	Getenv(key string) string
	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)
}

// Host is the production Info backed by the runtime and process environment.
type Host struct{}

func (Host) OS() string {
	return runtime.GOOS
}

func (Host) Arch() string {
	return runtime.GOARCH
}

func (Host) Getenv(key string) string {
	return os.Getenv(key)
}

func (Host) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// Static is a fixed Info for tests: any platform can be described from any
// host, which is how the per-OS directory conventions get exercised without
// running on three operating systems.
type Static struct {
	GOOS   string
	GOARCH string
	Env    map[string]string
	Home   string
}

func (s Static) OS() string {
	return s.GOOS
}

func (s Static) Arch() string {
	return s.GOARCH
}

func (s Static) Getenv(key string) string {
	return s.Env[key]
}

func (s Static) UserHomeDir() (string, error) {
	return s.Home, nil
}
