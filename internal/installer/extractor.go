package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/spf13/afero"
	"github.com/xi2/xz" // For reading .xz compressed data

	"gcop/internal/logger"
)

// The stock release assets are bare executables, but an overridden release
// host may package them. When the configured asset template names a
// recognized archive, the installer downloads the archive, extracts it,
// and installs the contained gcop-rs executable.

// archiveExt returns the recognized archive extension of name, or "" for a
// bare binary asset.
func archiveExt(name string) string {
	for _, ext := range []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z"} {
		if strings.HasSuffix(name, ext) {
			return ext
		}
	}
	return ""
}

// installFromArchive downloads an archive-packaged asset, extracts it under
// a temp directory, and moves the contained executable to binaryPath. The
// temp directory is removed afterwards either way.
func (ins *Installer) installFromArchive(url, assetName, binaryPath string) error {
	tmpDir, err := afero.TempDir(ins.Fs, "", "gcop-rs-asset-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if rerr := ins.Fs.RemoveAll(tmpDir); rerr != nil {
			logger.Debug("[DEBUG] Failed to remove %s: %v\n", tmpDir, rerr)
		}
	}()

	archivePath := filepath.Join(tmpDir, assetName)
	if err := ins.download(url, archivePath); err != nil {
		return err
	}

	extractDir := filepath.Join(tmpDir, "extracted")
	if err := ins.Fs.MkdirAll(extractDir, 0755); err != nil {
		return fmt.Errorf("failed to create extraction directory: %w", err)
	}
	if err := extractArchive(ins.Fs, archivePath, extractDir); err != nil {
		return fmt.Errorf("failed to extract %s: %w", assetName, err)
	}

	exe, err := findExecutable(ins.Fs, extractDir, filepath.Base(binaryPath))
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Extracted executable: %s\n", exe)

	src, err := ins.Fs.Open(exe)
	if err != nil {
		return fmt.Errorf("failed to open extracted executable: %w", err)
	}
	defer src.Close()
	return writeFileAtomic(ins.Fs, binaryPath, src)
}

// extractArchive routes to the extraction function matching the archive type.
func extractArchive(fs afero.Fs, src, dest string) error {
	switch ext := archiveExt(src); ext {
	case ".zip":
		logger.Debug("[DEBUG] Extracting zip archive %s\n", src)
		return extractZip(fs, src, dest)
	case ".7z":
		logger.Debug("[DEBUG] Extracting 7z archive %s\n", src)
		return extract7z(fs, src, dest)
	case ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz":
		logger.Debug("[DEBUG] Extracting tar archive %s\n", src)
		return extractTar(fs, src, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTar handles tar and its compressed variants.
func extractTar(fs afero.Fs, src, dest string) error {
	f, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return err
		}

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(fs, target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}
	return nil
}

// extractZip extracts a .zip archive.
func extractZip(fs afero.Fs, src, dest string) error {
	f, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}

	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		return err
	}
	for _, zf := range r.File {
		target, err := entryPath(dest, zf.Name)
		if err != nil {
			return err
		}
		if zf.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		werr := writeEntry(fs, target, rc, zf.Mode())
		rc.Close()
		if werr != nil {
			return werr
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(fs afero.Fs, src, dest string) error {
	f, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	for _, zf := range r.File {
		target, err := entryPath(dest, zf.Name)
		if err != nil {
			return err
		}
		if zf.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, zf.Mode()); err != nil {
				return err
			}
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		werr := writeEntry(fs, target, rc, zf.Mode())
		rc.Close()
		if werr != nil {
			return werr
		}
	}
	return nil
}

// entryPath joins an archive entry name onto dest, rejecting names that
// would escape it.
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes extraction directory: %s", name)
	}
	return target, nil
}

// writeEntry writes one archive entry to disk, creating parent directories.
func writeEntry(fs afero.Fs, target string, r io.Reader, mode os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// findExecutable scans an extraction directory for the gcop-rs executable.
// An entry whose base name equals wantName wins outright; otherwise the
// first regular file named like the tool with an executable mode (or .exe
// suffix) is taken.
func findExecutable(fs afero.Fs, root, wantName string) (string, error) {
	toolName := strings.TrimSuffix(wantName, ".exe")
	var fallback string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		base := filepath.Base(path)
		if base == wantName {
			fallback = path
			return io.EOF // Exact match, stop walking
		}
		if fallback != "" || !strings.HasPrefix(base, toolName) {
			return nil
		}
		if info.Mode().Perm()&0111 != 0 || strings.HasSuffix(base, ".exe") {
			fallback = path
		}
		return nil
	})
	if err != nil && err != io.EOF {
		return "", err
	}
	if fallback == "" {
		return "", fmt.Errorf("no %s executable found in archive", toolName)
	}
	return fallback, nil
}
