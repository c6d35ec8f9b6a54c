package upload

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/uploadslot/pkg/file"
)

// IsValid runs every check and appends one issue per failure; it does not stop
// at the first failure. Issues from earlier calls are kept, so calling it twice
// on an invalid slot duplicates them (see ResetErrors).
//
// Checks, in order: extension against the allowed set, size against the
// limit, and whether the runtime vouches for the temporary path.
func (s *Slot) IsValid(ctx context.Context) bool {
	if s.allowed != nil && !slices.Contains(s.allowed, s.extension) {
		s.addIssue(ErrExtensionNotAllowed, fmt.Sprintf(
			"This file extension is not allowed. Please upload a (%s) file.",
			strings.Join(s.allowed, ", "),
		))
	}

	if s.desc.Size > s.maxSize {
		s.addIssue(ErrFileTooLarge, fmt.Sprintf(
			"This file is larger than %s.", file.FormatSize(s.maxSize),
		))
	}

	if !s.host.IsUploadedFile(ctx, s.desc.TempPath) {
		s.addIssue(ErrNotUploadedFile, fmt.Sprintf(
			"%s: is not an uploaded file", s.NameWithExtension(),
		))
	}

	return len(s.issues) == 0
}
