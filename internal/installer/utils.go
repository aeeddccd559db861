package installer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"fmm-setup/internal/fsutil"
	"fmm-setup/internal/logger"
)

// copyFile copies a file from src to dst, preserving permissions and modification time.
// It creates any missing directories in the destination path and truncates an existing dst.
func copyFile(src, dst string) (err error) {
	// Open the source file
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source failed: %w", err)
	}

	// Ensure the destination directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close target failed: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	// OpenFile only applies the mode on creation, so an overwritten file needs an explicit chmod.
	if err := os.Chmod(dst, stat.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod failed: %w", err)
	}
	return os.Chtimes(dst, stat.ModTime(), stat.ModTime())
}

// copyTree replaces dst with a recursive copy of src. A symlinked src is
// followed. Inside the tree, symlinks to regular files are copied as files
// and symlinked directories are skipped.
func copyTree(src, dst string) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", src, err)
	}
	src = resolved
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("remove existing %s: %w", dst, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case d.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				logger.Warn("[WARN] Skipping symlink %s\n", path)
				return nil
			}
		}

		logger.Debug("[DEBUG] Copying %s -> %s\n", path, target)
		return copyFile(path, target)
	})
}

// copyItem copies src to dst whether it is a file or a directory, replacing whatever is at dst.
func copyItem(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyTree(src, dst)
	}
	return copyFile(src, dst)
}

// replaceInFile substitutes every literal occurrence of old with repl in the
// file at path and returns how many replacements were made.
func replaceInFile(path, old, repl string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(raw)
	n := strings.Count(content, old)
	if n == 0 {
		return 0, nil
	}
	content = strings.ReplaceAll(content, old, repl)
	if err := fsutil.WriteFile(path, []byte(content), uint32(info.Mode().Perm())); err != nil {
		return 0, err
	}
	return n, nil
}

// normalizePermissions sets directories to 0755 and files to 0644 under root,
// keeping the executable bit on files that already have one. Windows has no
// POSIX modes, so it is a no-op there.
func normalizePermissions(root string) error {
	if runtime.GOOS == "windows" {
		logger.Debug("[DEBUG] Skipping permission fix-up on Windows\n")
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		mode := os.FileMode(0o644)
		if d.IsDir() || info.Mode().Perm()&0o111 != 0 {
			mode = 0o755
		}
		return os.Chmod(path, mode)
	})
}
