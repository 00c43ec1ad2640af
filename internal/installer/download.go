package installer

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"

	"gcop/internal/logger"
)

// DownloadError is the terminal failure of a release asset transfer. It
// carries the URL so the user can check the release host by hand; there is
// no retry, re-running the wrapper attempts the transfer again.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download binary from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// download performs a single GET of url and installs the response body at
// dest. Any transfer failure surfaces as a *DownloadError.
func (ins *Installer) download(url, dest string) error {
	logger.Debug("[DEBUG] GET %s\n", url)

	resp, err := ins.Client.Get(url)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &DownloadError{URL: url, Err: fmt.Errorf("HTTP status %d", resp.StatusCode)}
	}

	if err := writeFileAtomic(ins.Fs, dest, resp.Body); err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	return nil
}

// writeFileAtomic streams r into a temp file next to dest and renames it
// into place, so an interrupted transfer never leaves a half-written file
// at dest. A concurrent wrapper invocation racing on the same path still
// ends with one complete file, last writer winning.
func writeFileAtomic(fs afero.Fs, dest string, r io.Reader) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(dest), ".gcop-rs-download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		removeSilently(fs, tmpName)
		if copyErr != nil {
			return fmt.Errorf("failed to write %s: %w", tmpName, copyErr)
		}
		return fmt.Errorf("failed to close %s: %w", tmpName, closeErr)
	}

	if err := fs.Chmod(tmpName, 0644); err != nil {
		removeSilently(fs, tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}

	if err := fs.Rename(tmpName, dest); err != nil {
		// Some backends refuse to rename over an existing file; clear the
		// destination and retry once.
		_ = fs.Remove(dest)
		if err := fs.Rename(tmpName, dest); err != nil {
			removeSilently(fs, tmpName)
			return fmt.Errorf("failed to move download into place: %w", err)
		}
	}
	return nil
}

func removeSilently(fs afero.Fs, path string) {
	if err := fs.Remove(path); err != nil {
		logger.Debug("[DEBUG] Failed to remove %s: %v\n", path, err)
	}
}
