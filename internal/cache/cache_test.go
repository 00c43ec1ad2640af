package cache

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"gcop/internal/system"
)

func TestDirPerPlatform(t *testing.T) {
	tests := []struct {
		name string
		sys  system.Static
		want string
	}{
		{
			name: "linux xdg default",
			sys:  system.Static{GOOS: "linux", Home: "/home/alice"},
			want: filepath.Join("/home/alice", ".cache", "gcop-rs", "bin"),
		},
		{
			name: "linux xdg override",
			sys: system.Static{
				GOOS: "linux",
				Home: "/home/alice",
				Env:  map[string]string{"XDG_CACHE_HOME": "/var/cache/alice"},
			},
			want: filepath.Join("/var/cache/alice", "gcop-rs", "bin"),
		},
		{
			name: "darwin library caches",
			sys:  system.Static{GOOS: "darwin", Home: "/Users/alice"},
			want: filepath.Join("/Users/alice", "Library", "Caches", "gcop-rs", "bin"),
		},
		{
			name: "windows localappdata",
			sys: system.Static{
				GOOS: "windows",
				Home: `C:\Users\alice`,
				Env:  map[string]string{"LOCALAPPDATA": `C:\Users\alice\AppData\Local`},
			},
			want: filepath.Join(`C:\Users\alice\AppData\Local`, "gcop-rs", "bin"),
		},
		{
			name: "windows localappdata unset",
			sys:  system.Static{GOOS: "windows", Home: `C:\Users\alice`},
			want: filepath.Join(`C:\Users\alice`, "AppData", "Local", "gcop-rs", "bin"),
		},
		{
			name: "freebsd follows xdg convention",
			sys:  system.Static{GOOS: "freebsd", Home: "/home/alice"},
			want: filepath.Join("/home/alice", ".cache", "gcop-rs", "bin"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dir(tt.sys)
			if err != nil {
				t.Fatalf("Dir: %v", err)
			}
			if got != tt.want {
				t.Errorf("Dir = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureDirCreatesAndIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	sys := system.Static{GOOS: "linux", Home: "/home/alice"}

	dir, err := EnsureDir(fs, sys)
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if ok, _ := afero.DirExists(fs, dir); !ok {
		t.Fatalf("EnsureDir did not create %s", dir)
	}

	// Second call must succeed against the existing directory.
	again, err := EnsureDir(fs, sys)
	if err != nil {
		t.Fatalf("EnsureDir (second call): %v", err)
	}
	if again != dir {
		t.Errorf("EnsureDir returned %q then %q", dir, again)
	}
}
