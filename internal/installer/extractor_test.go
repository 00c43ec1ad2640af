package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"gcop/internal/config"
)

func zipAsset(t *testing.T, entryName string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	hdr := &zip.FileHeader{Name: entryName, Method: zip.Deflate}
	hdr.SetMode(0755)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(testBinary)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func tarGzAsset(t *testing.T, entryName string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	if err := tw.WriteHeader(&tar.Header{
		Name: entryName,
		Mode: 0755,
		Size: int64(len(testBinary)),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte(testBinary)); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func serveBytes(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func archiveInstaller(baseURL, template string) *Installer {
	return New(afero.NewMemMapFs(), linuxHost(), config.Settings{
		BaseURL:       baseURL,
		AssetTemplate: template,
	})
}

func TestEnsureBinaryZipAsset(t *testing.T) {
	srv := serveBytes(t, zipAsset(t, "gcop-rs-v0.4.2-linux-amd64/gcop-rs"))
	ins := archiveInstaller(srv.URL, "gcop-rs-v{version}-{platform}.zip")

	path, err := ins.EnsureBinary("0.4.2")
	if err != nil {
		t.Fatalf("EnsureBinary: %v", err)
	}
	data, err := afero.ReadFile(ins.Fs, path)
	if err != nil || string(data) != testBinary {
		t.Errorf("installed binary = %q (%v), want archive member content", data, err)
	}
	info, err := ins.Fs.Stat(path)
	if err != nil || info.Mode()&0111 == 0 {
		t.Errorf("binary mode = %v (%v), want executable bits", info.Mode(), err)
	}
}

func TestEnsureBinaryTarGzAsset(t *testing.T) {
	srv := serveBytes(t, tarGzAsset(t, "gcop-rs-v0.4.2-linux-amd64/gcop-rs"))
	ins := archiveInstaller(srv.URL, "gcop-rs-v{version}-{platform}.tar.gz")

	path, err := ins.EnsureBinary("0.4.2")
	if err != nil {
		t.Fatalf("EnsureBinary: %v", err)
	}
	data, err := afero.ReadFile(ins.Fs, path)
	if err != nil || string(data) != testBinary {
		t.Errorf("installed binary = %q (%v), want archive member content", data, err)
	}
}

func TestEnsureBinaryArchiveWithoutExecutable(t *testing.T) {
	srv := serveBytes(t, zipAsset(t, "README.md"))
	ins := archiveInstaller(srv.URL, "gcop-rs-v{version}-{platform}.zip")

	if _, err := ins.EnsureBinary("0.4.2"); err == nil {
		t.Fatal("EnsureBinary succeeded on archive with no gcop-rs executable")
	}
}

func TestArchiveExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"gcop-rs-v0.4.2-linux-amd64", ""},
		{"gcop-rs-v0.4.2-windows-amd64.exe", ""},
		{"gcop-rs-v0.4.2-linux-amd64.zip", ".zip"},
		{"gcop-rs-v0.4.2-linux-amd64.tar.gz", ".tar.gz"},
		{"gcop-rs-v0.4.2-linux-amd64.tgz", ".tgz"},
		{"gcop-rs-v0.4.2-linux-amd64.tar.bz2", ".tar.bz2"},
		{"gcop-rs-v0.4.2-linux-amd64.tar.xz", ".tar.xz"},
		{"gcop-rs-v0.4.2-linux-amd64.7z", ".7z"},
	}
	for _, tt := range tests {
		if got := archiveExt(tt.name); got != tt.want {
			t.Errorf("archiveExt(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEntryPathRejectsEscape(t *testing.T) {
	if _, err := entryPath("/tmp/extract", "../outside"); err == nil {
		t.Error("entryPath accepted a ../ escape")
	}
	if _, err := entryPath("/tmp/extract", "dir/../../outside"); err == nil {
		t.Error("entryPath accepted a nested escape")
	}
	if _, err := entryPath("/tmp/extract", "dir/inside"); err != nil {
		t.Errorf("entryPath rejected a safe entry: %v", err)
	}
}
