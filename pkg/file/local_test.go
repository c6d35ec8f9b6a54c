package file_test

import (
	"os"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/file"
)

// crossDeviceFs refuses renames the way os.Rename does across mount points.
type crossDeviceFs struct {
	afero.Fs
}

func (crossDeviceFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()

		require.NoError(t, file.EnsureDir(fs, "uploads/a/b/c", file.DefaultDirPerm))

		info, err := fs.Stat("uploads/a/b/c")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("uploads", 0o755))

		assert.NoError(t, file.EnsureDir(fs, "uploads", 0))
	})

	t.Run("existing directory on read-only fs", func(t *testing.T) {
		t.Parallel()
		base := afero.NewMemMapFs()
		require.NoError(t, base.MkdirAll("uploads", 0o755))

		assert.NoError(t, file.EnsureDir(afero.NewReadOnlyFs(base), "uploads", file.DefaultDirPerm))
	})

	t.Run("missing directory on read-only fs", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

		err := file.EnsureDir(fs, "uploads", file.DefaultDirPerm)
		assert.ErrorIs(t, err, file.ErrFailedToCreateDirectory)
	})

	t.Run("path is a file", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "uploads", []byte("x"))

		err := file.EnsureDir(fs, "uploads", file.DefaultDirPerm)
		assert.ErrorIs(t, err, file.ErrNotDirectory)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, file.EnsureDir(afero.NewMemMapFs(), "", 0), file.ErrEmptyPath)
	})
}

func TestCheckWritable(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("uploads", 0o755))
	writeFile(t, base, "plain.txt", []byte("x"))

	assert.NoError(t, file.CheckWritable(base, "uploads"))
	assert.ErrorIs(t, file.CheckWritable(base, "missing"), file.ErrFileNotFound)
	assert.ErrorIs(t, file.CheckWritable(base, "plain.txt"), file.ErrNotDirectory)
	assert.ErrorIs(t, file.CheckWritable(afero.NewReadOnlyFs(base), "uploads"), file.ErrDirectoryReadOnly)

	entries, err := afero.ReadDir(base, "uploads")
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file must be cleaned up")
}

func TestMove(t *testing.T) {
	t.Parallel()

	t.Run("rename", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/tmp/upload-1", []byte("payload"))
		require.NoError(t, fs.MkdirAll("/srv/uploads", 0o755))

		require.NoError(t, file.Move(fs, "/tmp/upload-1", "/srv/uploads/a.txt"))

		data, err := afero.ReadFile(fs, "/srv/uploads/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		exists, err := afero.Exists(fs, "/tmp/upload-1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("copy fallback across devices", func(t *testing.T) {
		t.Parallel()
		fs := crossDeviceFs{afero.NewMemMapFs()}
		writeFile(t, fs, "/tmp/upload-2", []byte("payload"))
		require.NoError(t, fs.MkdirAll("/srv/uploads", 0o755))

		require.NoError(t, file.Move(fs, "/tmp/upload-2", "/srv/uploads/b.txt"))

		data, err := afero.ReadFile(fs, "/srv/uploads/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))

		exists, err := afero.Exists(fs, "/tmp/upload-2")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing destination directory", func(t *testing.T) {
		t.Parallel()
		fs := crossDeviceFs{afero.NewMemMapFs()}
		writeFile(t, fs, "/tmp/upload-3", []byte("payload"))

		err := file.Move(fs, "/tmp/upload-3", "/nowhere/c.txt")
		assert.ErrorIs(t, err, file.ErrFailedToMoveFile)

		exists, err := afero.Exists(fs, "/tmp/upload-3")
		require.NoError(t, err)
		assert.True(t, exists, "source must survive a failed move")
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		t.Parallel()
		base := afero.NewMemMapFs()
		writeFile(t, base, "/tmp/upload-4", []byte("payload"))
		require.NoError(t, base.MkdirAll("/srv", 0o755))

		err := file.Move(afero.NewReadOnlyFs(base), "/tmp/upload-4", "/srv/d.txt")
		assert.ErrorIs(t, err, file.ErrFailedToMoveFile)
	})

	t.Run("empty paths", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, file.Move(afero.NewMemMapFs(), "", "x"), file.ErrEmptyPath)
	})
}
