// Package fsutil holds small filesystem helpers shared by the config and
// installer packages.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func fileMode(perm uint32) os.FileMode {
	return os.FileMode(perm) & os.ModePerm
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ConfineRelPath joins root and rel, refusing any rel that would land outside root.
// Archive entries are checked with it before anything is written.
func ConfineRelPath(root, rel string) (string, error) {
	cleanRel := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("target path must be relative: %s", rel)
	}
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt: %s", rel)
	}
	return filepath.Join(root, cleanRel), nil
}
