package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DefaultDirPerm is used when creating destination directories (rwxr-xr-x).
	DefaultDirPerm os.FileMode = 0o755
	// DefaultFilePerm is used for files written by Move's copy fallback (rw-r--r--).
	DefaultFilePerm os.FileMode = 0o644
)

// EnsureDir creates dir and any missing parents with perm.
// An existing directory is left untouched, so a read-only filesystem that
// already holds the directory is not an error here; use CheckWritable for that.
func EnsureDir(fs afero.Fs, dir string, perm os.FileMode) error {
	if dir == "" {
		return ErrEmptyPath
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}

	info, err := fs.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	case !os.IsNotExist(err):
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if err := fs.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	return nil
}

// CheckWritable verifies that files can be created inside dir.
// Probes by creating and removing a hidden temp file, which also covers
// filesystems where mode bits do not tell the whole story (read-only mounts,
// afero.ReadOnlyFs, root-owned dirs under an unprivileged user).
//
// Returns ErrFileNotFound, ErrNotDirectory or ErrDirectoryReadOnly.
func CheckWritable(fs afero.Fs, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	probe, err := afero.TempFile(fs, dir, ".write-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDirectoryReadOnly, dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = fs.Remove(name)

	return nil
}

// Move relocates src to dst. A rename is attempted first; when it fails
// (for example across devices) the content is copied and src removed.
// An existing dst is replaced.
func Move(fs afero.Fs, src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	renameErr := fs.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	if err := copyFile(fs, src, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToMoveFile, errors.Join(renameErr, err))
	}
	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToMoveFile, err)
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := open(fs, src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if _, err := fs.Stat(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fs.Remove(dst) // Clean up partial file
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := out.Close(); err != nil {
		_ = fs.Remove(dst)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}
