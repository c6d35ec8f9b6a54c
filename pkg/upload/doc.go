// Package upload validates a single received file and moves it into a
// destination directory under a sanitized name.
//
// The request runtime that received the file is abstracted as a Host; it
// vouches for temporary paths and performs the move. Descriptors describe what
// the runtime received, keyed by form field.
//
//	slot, err := upload.New("avatar", files, host, upload.WithLogger(log))
//	if err != nil {
//		return err // ErrKeyNotFound, *TransferError, ...
//	}
//	slot.SetDir("uploads/avatars").
//		SetMaxSize(512 * file.KiB).
//		SetAllowed("png", "jpg")
//	if !slot.Upload(ctx) {
//		return slot.Err() // or slot.Errors() for display
//	}
//	log.Info("stored", "path", slot.Path())
//
// Validation collects every failure instead of stopping at the first one.
// Messages are meant for end users; Issue.Err carries a sentinel for code.
//
// A Slot holds only one file and is spent after a successful Upload.
package upload
