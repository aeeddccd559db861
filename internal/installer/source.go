package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"fmm-setup/internal/config"
	"fmm-setup/internal/fsutil"
	"fmm-setup/internal/logger"
)

// Source is an opened release bundle: a directory holding the plugin files
// and the pwa folder, plus the manifest describing them.
type Source struct {
	Root     string
	Manifest config.Manifest

	tmpDir string // set when Root was extracted from an archive
}

// OpenSource opens the bundle at path. A directory is used in place; an
// archive is extracted to a temporary directory that Close removes.
func OpenSource(path string) (*Source, error) {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}

	src := &Source{Root: path}
	if !info.IsDir() {
		if !isArchive(path) {
			return nil, fmt.Errorf("bundle %s is neither a folder nor a supported archive", path)
		}
		src.tmpDir, err = os.MkdirTemp("", "fmm-setup-*")
		if err != nil {
			return nil, fmt.Errorf("create extraction dir: %w", err)
		}
		logger.Info("[INFO] Extracting bundle %s...\n", filepath.Base(path))
		if src.Root, err = ExtractArchive(path, src.tmpDir); err != nil {
			_ = src.Close()
			return nil, err
		}
	}

	if src.Manifest, err = config.LoadManifest(src.Root); err != nil {
		_ = src.Close()
		return nil, err
	}
	logger.Debug("[DEBUG] Using bundle root %s\n", src.Root)
	return src, nil
}

// Path returns the absolute location of a bundle-relative path.
func (s *Source) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

// Close removes any temporary extraction directory.
func (s *Source) Close() error {
	if s.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(s.tmpDir)
	s.tmpDir = ""
	return err
}
