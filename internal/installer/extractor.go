package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"fmm-setup/internal/fsutil"
	"fmm-setup/internal/logger"
)

// archiveExts lists the bundle formats ExtractArchive understands.
var archiveExts = []string{".zip", ".7z", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// isArchive reports whether path has one of the supported archive extensions.
func isArchive(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ExtractArchive unpacks src into dest and returns the bundle root: the single
// top-level folder when every entry lives under one, otherwise dest itself.
// Entries that would escape dest are rejected.
func ExtractArchive(src, dest string) (string, error) {
	lower := strings.ToLower(src)
	var (
		names []string
		err   error
	)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		names, err = extractZip(src, dest)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		names, err = extract7z(src, dest)
	case strings.HasSuffix(lower, ".tar"), strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"),
		strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		names, err = extractTarArchive(src, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", src, err)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("archive %s is empty", src)
	}

	if top := commonTopLevel(names); top != "" {
		if info, err := os.Stat(filepath.Join(dest, top)); err == nil && info.IsDir() {
			return filepath.Join(dest, top), nil
		}
	}
	return dest, nil
}

// commonTopLevel returns the first path segment shared by every entry name, or "".
func commonTopLevel(names []string) string {
	var top string
	for _, name := range names {
		name = strings.TrimPrefix(filepath.ToSlash(name), "./")
		first, _, _ := strings.Cut(name, "/")
		if first == "" {
			continue
		}
		if top == "" {
			top = first
		} else if top != first {
			return ""
		}
	}
	return top
}

// writeEntry creates dest/name from r with the given mode.
func writeEntry(dest, name string, r io.Reader, mode os.FileMode) error {
	target, err := fsutil.ConfineRelPath(dest, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// makeDir creates dest/name for a directory entry.
func makeDir(dest, name string) error {
	target, err := fsutil.ConfineRelPath(dest, name)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string) ([]string, error) {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lower := strings.ToLower(src)
	var reader io.Reader = f
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	var names []string

	// Iterate over each file in the archive
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break // End of archive
		}
		if err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := makeDir(dest, hdr.Name); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			if err := writeEntry(dest, hdr.Name, tr, hdr.FileInfo().Mode()); err != nil {
				return nil, err
			}
		default:
			logger.Debug("[DEBUG] Skipping tar entry %s of type %c\n", hdr.Name, hdr.Typeflag)
			continue
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			if err := makeDir(dest, f.Name); err != nil {
				return nil, err
			}
			names = append(names, f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = writeEntry(dest, f.Name, rc, f.Mode())
		rc.Close()
		if err != nil {
			return nil, err
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) ([]string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			if err := makeDir(dest, f.Name); err != nil {
				return nil, err
			}
			names = append(names, f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = writeEntry(dest, f.Name, rc, f.Mode())
		rc.Close()
		if err != nil {
			return nil, err
		}
		names = append(names, f.Name)
	}
	return names, nil
}
