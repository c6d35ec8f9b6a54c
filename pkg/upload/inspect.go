package upload

import "github.com/dmitrymomot/uploadslot/pkg/file"

// Size returns the byte count reported by the runtime.
func (s *Slot) Size() int64 {
	return s.desc.Size
}

// Mimetype returns the content type declared by the client. It is not
// verified; use DetectedMimetype for anything security-relevant.
func (s *Slot) Mimetype() string {
	return s.desc.MimeType
}

// DetectedMimetype sniffs the content type from the file bytes.
func (s *Slot) DetectedMimetype() (string, error) {
	return file.DetectMIME(s.fs, s.location())
}

// MD5 returns the hex MD5 digest of the file content.
func (s *Slot) MD5() (string, error) {
	return file.MD5(s.fs, s.location())
}

// Hash returns the hex digest of the file content for the named algorithm
// (see file.HashAlgorithms).
func (s *Slot) Hash(algorithm string) (string, error) {
	return file.Hash(s.fs, s.location(), algorithm)
}

// Dimensions returns the pixel size of an image. Fails with file.ErrNotAnImage
// for anything that is not a decodable raster image.
func (s *Slot) Dimensions() (file.Dimensions, error) {
	return file.GetDimensions(s.fs, s.location())
}

// location is the temporary path, or the placed path once Upload succeeded.
func (s *Slot) location() string {
	if s.placed != "" {
		return s.placed
	}
	return s.desc.TempPath
}
