//go:build !windows

package fsutil

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// WriteFile replaces path with data. The content is written to a temp file
// in the same directory, synced and renamed over the target, so readers see
// either the old file or the new one. The result always has mode perm, even
// when an existing target had a looser one.
func WriteFile(path string, data []byte, perm uint32) error {
	mode := fileMode(perm)
	t, err := renameio.NewPendingFile(path, renameio.WithPermissions(mode), renameio.WithStaticPermissions(mode))
	if err != nil {
		return fmt.Errorf("atomically write %s: %w", path, err)
	}
	defer t.Cleanup()

	if _, err := t.Write(data); err != nil {
		return fmt.Errorf("atomically write %s: %w", path, err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically write %s: %w", path, err)
	}
	return nil
}
