package upload_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

// fakeHost vouches for the paths registered with receive and moves them
// within its filesystem.
type fakeHost struct {
	fs       afero.Fs
	disabled bool
	uploaded map[string]bool
	moveErr  error
}

func newHost() *fakeHost {
	return &fakeHost{fs: afero.NewMemMapFs(), uploaded: map[string]bool{}}
}

func (h *fakeHost) UploadsEnabled() bool { return !h.disabled }

func (h *fakeHost) IsUploadedFile(_ context.Context, path string) bool {
	return h.uploaded[path]
}

func (h *fakeHost) MoveUploadedFile(_ context.Context, src, dst string) error {
	if h.moveErr != nil {
		return h.moveErr
	}
	if !h.uploaded[src] {
		return errors.New("not an uploaded file")
	}
	if err := file.Move(h.fs, src, dst); err != nil {
		return err
	}
	delete(h.uploaded, src)
	return nil
}

func (h *fakeHost) Fs() afero.Fs { return h.fs }

// receive stores content at tmpPath, marks it as uploaded and returns its descriptor.
func (h *fakeHost) receive(t *testing.T, name, tmpPath string, content []byte) upload.Descriptor {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, tmpPath, content, 0o600))
	h.uploaded[tmpPath] = true
	return upload.Descriptor{
		Name:     name,
		MimeType: "application/octet-stream",
		TempPath: tmpPath,
		Size:     int64(len(content)),
	}
}

type recordingReplicator struct {
	paths []string
	err   error
}

func (r *recordingReplicator) Replicate(_ context.Context, _ afero.Fs, path string) error {
	r.paths = append(r.paths, path)
	return r.err
}
