package upload

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
)

// Upload validates the file and moves it into Dir()/NameWithExtension().
//
// On validation failure the validation issues are kept. When the directory
// cannot be prepared, or the move fails, the error list is replaced by a
// single message describing that failure. An existing file with the same name
// is overwritten.
//
// After a successful Upload the slot is spent: further calls record
// ErrAlreadyMoved and return false.
func (s *Slot) Upload(ctx context.Context) bool {
	if s.placed != "" {
		s.addIssue(ErrAlreadyMoved, fmt.Sprintf("%s: has already been moved to %s", s.NameWithExtension(), s.placed))
		return false
	}

	if !s.IsValid(ctx) {
		s.logger.DebugContext(ctx, "upload rejected",
			logger.Filename(s.desc.Name),
			logger.Messages(s.Errors()),
		)
		return false
	}

	if !s.createDirectory(ctx) {
		s.replaceIssues(ErrDirectoryNotFound, "Directory not found.")
		return false
	}

	dst := s.dir + "/" + s.NameWithExtension()
	if err := s.host.MoveUploadedFile(ctx, s.desc.TempPath, dst); err != nil {
		s.logger.ErrorContext(ctx, "failed to move uploaded file",
			logger.Path(dst),
			logger.Error(err),
		)
		s.replaceIssues(ErrMoveFailed, fmt.Sprintf(
			"Unable to upload the file. Check write permissions on directory %s.", s.dir,
		))
		return false
	}
	s.placed = dst

	s.logger.InfoContext(ctx, "file uploaded",
		logger.Path(dst),
		logger.Size(s.desc.Size),
	)

	if s.replicator != nil {
		if err := s.replicator.Replicate(ctx, s.fs, dst); err != nil {
			s.logger.WarnContext(ctx, "failed to replicate uploaded file",
				logger.Path(dst),
				logger.Error(err),
			)
		}
	}

	return true
}

// createDirectory makes sure the destination exists and accepts new files.
// A failed creation is not reported by itself: the writability probe decides.
func (s *Slot) createDirectory(ctx context.Context) bool {
	if s.dir == "" {
		s.dir = DefaultDir
	}

	if err := file.EnsureDir(s.fs, s.dir, s.dirPerm); err != nil {
		s.logger.DebugContext(ctx, "failed to create upload directory",
			logger.Dir(s.dir),
			logger.Error(err),
		)
	}

	if err := file.CheckWritable(s.fs, s.dir); err != nil {
		s.logger.DebugContext(ctx, "upload directory rejected", logger.Dir(s.dir), logger.Error(err))
		s.addIssue(ErrDirectoryNotWritable, "Directory is not writable")
		return false
	}
	return true
}
