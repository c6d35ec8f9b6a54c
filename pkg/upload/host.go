package upload

import (
	"context"

	"github.com/spf13/afero"
)

// Host is the request runtime that received the files. It owns the temporary
// artifacts and is the only party that can vouch for their origin.
type Host interface {
	// UploadsEnabled reports whether the runtime accepts file uploads at all.
	UploadsEnabled() bool
	// IsUploadedFile reports whether path was produced by the runtime for an
	// upload, as opposed to an arbitrary path smuggled into a descriptor.
	IsUploadedFile(ctx context.Context, path string) bool
	// MoveUploadedFile moves a verified upload to dst. It must refuse paths
	// that IsUploadedFile rejects.
	MoveUploadedFile(ctx context.Context, src, dst string) error
	// Fs is the filesystem holding both the temporary artifacts and the
	// destination directories.
	Fs() afero.Fs
}

// Replicator receives every successfully placed file, for example to copy it
// to object storage. Failures are logged and do not undo the placement.
type Replicator interface {
	Replicate(ctx context.Context, fs afero.Fs, path string) error
}
