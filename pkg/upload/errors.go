package upload

import (
	"errors"
	"fmt"
)

var (
	// Ingestion errors, returned by New.
	ErrNilHost         = errors.New("upload host is nil")
	ErrUploadsDisabled = errors.New("file uploads are disabled")
	ErrKeyNotFound     = errors.New("cannot find uploaded file identified by key")
	ErrTransfer        = errors.New("file transfer failed")

	// Validation issues.
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
	ErrFileTooLarge        = errors.New("file is too large")
	ErrNotUploadedFile     = errors.New("file is not an uploaded file")

	// Placement issues.
	ErrDirectoryNotWritable = errors.New("directory is not writable")
	ErrDirectoryNotFound    = errors.New("directory not found")
	ErrMoveFailed           = errors.New("unable to move uploaded file")
	ErrAlreadyMoved         = errors.New("file has already been moved")
)

// TransferError reports a file the runtime failed to receive.
type TransferError struct {
	Filename string
	Code     TransferCode
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Code.Message())
}

func (e *TransferError) Unwrap() error {
	return ErrTransfer
}

// Issue is one entry of a Slot's error list: a message for display and the
// sentinel error it belongs to.
type Issue struct {
	Err     error
	Message string
}

func (i Issue) Error() string {
	return i.Message
}

func (i Issue) Unwrap() error {
	return i.Err
}
