//go:build windows

package fsutil

import (
	"fmt"
	"os"
)

// WriteFile writes data to path. renameio does not support Windows, so this
// falls back to a plain truncating write.
func WriteFile(path string, data []byte, perm uint32) error {
	if err := os.WriteFile(path, data, fileMode(perm)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// os.WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, fileMode(perm)); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
