// Package file provides filesystem primitives for handling uploaded artifacts.
//
// Every function takes an afero.Fs so the same code runs against the real
// disk (afero.NewOsFs), an in-memory filesystem in tests (afero.NewMemMapFs)
// or a read-only view (afero.NewReadOnlyFs).
//
// # Names
//
// Client-declared names are never trusted:
//
//	base, ext := file.SplitName(`C:\Users\bob\Holiday Photo.JPG`) // "Holiday Photo", "JPG"
//	base = file.SanitizeName(base)                                 // strips unsafe characters and ".." runs
//	name := file.JoinName(base, strings.ToLower(ext))              // "Holiday Photo.jpg"
//
// SanitizeName keeps word characters, whitespace, digits and "-_~,;:[]().",
// removes any run of two or more dots and drops directory components, so the
// result can never escape the directory it is joined with. Transliterate can be
// applied first to keep accented letters readable.
//
// # Inspection
//
//	sum, err := file.Hash(fs, path, "sha256") // md5, sha1, sha2, sha3, blake2, crc32b, ...
//	mime, err := file.DetectMIME(fs, path)     // magic-byte detection
//	dim, err := file.GetDimensions(fs, path)   // GIF, JPEG, PNG, BMP, TIFF, WebP
//	label := file.FormatSize(1536)             // "2 KiB"
//
// # Placement
//
//	if err := file.EnsureDir(fs, "uploads/avatars", file.DefaultDirPerm); err != nil {
//		return err
//	}
//	if err := file.CheckWritable(fs, "uploads/avatars"); err != nil {
//		return err // errors.Is(err, file.ErrDirectoryReadOnly) for read-only dirs
//	}
//	err := file.Move(fs, tmpPath, "uploads/avatars/me.png")
//
// Move renames when possible and falls back to copy-and-remove across devices.
//
// # Mirroring
//
// S3Mirror copies placed files to AWS S3 or an S3-compatible service (MinIO,
// Wasabi, ...), keeping the local relative path as the object key:
//
//	mirror, err := file.NewS3Mirror(ctx, file.S3Config{
//		Bucket: "uploads",
//		Region: "us-east-1",
//	})
//	err = mirror.Replicate(ctx, fs, "uploads/avatars/me.png")
//
// S3 errors are mapped to package errors (ErrAccessDenied, ErrBucketNotFound,
// ErrFileNotFound, ...) so callers can use errors.Is.
package file
