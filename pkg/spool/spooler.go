package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

const (
	// DefaultMaxMemory is the part of a multipart form kept in memory while parsing.
	DefaultMaxMemory = 10 << 20
	// DefaultMaxFileSize is the server-wide per-file limit: 32 MiB.
	DefaultMaxFileSize = 32 << 20
	// FormSizeField is the form field a client can use to declare a lower
	// per-file limit.
	FormSizeField = "MAX_FILE_SIZE"

	tempDirPerm  os.FileMode = 0o700
	tempFilePerm os.FileMode = 0o600
)

var _ upload.Host = (*Spooler)(nil)

// Spooler receives files from requests into a private temporary directory and
// vouches for them afterwards. It implements upload.Host and is safe for
// concurrent use.
type Spooler struct {
	fs          afero.Fs
	registry    Registry
	dir         string
	maxFileSize int64
	disabled    bool
	logger      *slog.Logger
}

// Option configures a Spooler.
type Option func(*Spooler)

// WithDir sets the temporary directory.
func WithDir(dir string) Option {
	return func(s *Spooler) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithMaxFileSize sets the server-wide per-file limit. Larger files are
// reported with upload.CodeIniSize. Zero or less means no limit.
func WithMaxFileSize(n int64) Option {
	return func(s *Spooler) {
		s.maxFileSize = n
	}
}

// WithUploadsDisabled makes UploadsEnabled report false.
func WithUploadsDisabled() Option {
	return func(s *Spooler) {
		s.disabled = true
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Spooler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Spooler over fs. Nil fs means the OS filesystem, nil registry
// an in-memory one.
func New(fs afero.Fs, registry Registry, opts ...Option) *Spooler {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if registry == nil {
		registry = NewMemoryRegistry()
	}
	s := &Spooler{
		fs:          fs,
		registry:    registry,
		dir:         filepath.Join(os.TempDir(), "uploadslot"),
		maxFileSize: DefaultMaxFileSize,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("spool"))
	return s
}

func (s *Spooler) UploadsEnabled() bool {
	return !s.disabled
}

func (s *Spooler) Fs() afero.Fs {
	return s.fs
}

// Dir returns the temporary directory.
func (s *Spooler) Dir() string {
	return s.dir
}

// FromRequest spools the first file of every multipart field in r.
// The form is parsed if the caller has not done so. A positive MAX_FILE_SIZE
// form value marks larger files with upload.CodeFormSize without storing them.
// When uploads are disabled nothing is read and the result is empty.
func (s *Spooler) FromRequest(ctx context.Context, r *http.Request) (upload.Descriptors, error) {
	files := upload.Descriptors{}
	if s.disabled {
		return files, nil
	}

	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	}

	var formLimit int64
	if v := r.MultipartForm.Value[FormSizeField]; len(v) > 0 {
		if n, err := strconv.ParseInt(strings.TrimSpace(v[0]), 10, 64); err == nil && n > 0 {
			formLimit = n
		}
	}

	for key, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		if formLimit > 0 && fh.Size > formLimit {
			files[key] = upload.Descriptor{
				Name:     fh.Filename,
				MimeType: contentType(fh),
				Code:     upload.CodeFormSize,
			}
			continue
		}
		files[key] = s.Spool(ctx, fh)
	}
	return files, nil
}

// Spool stores one multipart file and returns its descriptor. Failures are
// reported through Descriptor.Code, never as an error.
func (s *Spooler) Spool(ctx context.Context, fh *multipart.FileHeader) upload.Descriptor {
	if fh == nil || fh.Filename == "" {
		return upload.Descriptor{Code: upload.CodeNoFile}
	}
	if s.maxFileSize > 0 && fh.Size > s.maxFileSize {
		return upload.Descriptor{Name: fh.Filename, MimeType: contentType(fh), Code: upload.CodeIniSize}
	}

	src, err := fh.Open()
	if err != nil {
		s.logger.WarnContext(ctx, "failed to open multipart file", logger.Filename(fh.Filename), logger.Error(err))
		return upload.Descriptor{Name: fh.Filename, MimeType: contentType(fh), Code: upload.CodePartial}
	}
	defer func() { _ = src.Close() }()

	return s.SpoolReader(ctx, fh.Filename, contentType(fh), src)
}

// SpoolReader stores the content of r as an upload named name. It serves
// callers that do not receive files over HTTP.
func (s *Spooler) SpoolReader(ctx context.Context, name, mimeType string, r io.Reader) upload.Descriptor {
	desc := upload.Descriptor{Name: name, MimeType: mimeType}
	if name == "" {
		desc.Code = upload.CodeNoFile
		return desc
	}

	if err := file.EnsureDir(s.fs, s.dir, tempDirPerm); err != nil {
		s.logger.ErrorContext(ctx, "failed to create temp directory", logger.Dir(s.dir), logger.Error(err))
		desc.Code = upload.CodeNoTmpDir
		return desc
	}

	path := filepath.Join(s.dir, uuid.NewString())
	n, err := s.write(path, r)
	switch {
	case errors.Is(err, errTooLarge):
		desc.Code = upload.CodeIniSize
		return desc
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to write temp file", logger.Path(path), logger.Error(err))
		desc.Code = upload.CodeCantWrite
		return desc
	}

	if err := s.registry.Add(ctx, path); err != nil {
		_ = s.fs.Remove(path)
		s.logger.ErrorContext(ctx, "failed to register temp file", logger.Path(path), logger.Error(err))
		desc.Code = upload.CodeCantWrite
		return desc
	}

	desc.TempPath = path
	desc.Size = n
	s.logger.DebugContext(ctx, "file spooled", logger.Filename(name), logger.Path(path), logger.Size(n))
	return desc
}

var errTooLarge = errors.New("file exceeds server limit")

// write copies r into a new file at path, removing it on any failure.
func (s *Spooler) write(path string, r io.Reader) (int64, error) {
	out, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, tempFilePerm)
	if err != nil {
		return 0, err
	}

	src := r
	if s.maxFileSize > 0 {
		src = io.LimitReader(r, s.maxFileSize+1)
	}
	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxFileSize > 0 && n > s.maxFileSize {
		err = errTooLarge
	}
	if err != nil {
		_ = s.fs.Remove(path)
		return 0, err
	}
	return n, nil
}

// IsUploadedFile reports whether path was spooled by s and is still present.
func (s *Spooler) IsUploadedFile(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	ok, err := s.registry.Has(ctx, path)
	if err != nil {
		s.logger.WarnContext(ctx, "provenance check failed", logger.Path(path), logger.Error(err))
		return false
	}
	if !ok {
		return false
	}
	exists, err := afero.Exists(s.fs, path)
	return err == nil && exists
}

// MoveUploadedFile moves a spooled file to dst, replacing any existing file.
// Paths not produced by s are refused with ErrNotSpooled.
func (s *Spooler) MoveUploadedFile(ctx context.Context, src, dst string) error {
	if !s.IsUploadedFile(ctx, src) {
		return fmt.Errorf("%w: %s", ErrNotSpooled, src)
	}
	if err := file.Move(s.fs, src, dst); err != nil {
		return err
	}
	if err := s.registry.Remove(ctx, src); err != nil {
		s.logger.WarnContext(ctx, "failed to forget moved file", logger.Path(src), logger.Error(err))
	}
	return nil
}

// Release deletes spooled files that were not moved. Call it once the
// request is done, typically with defer.
func (s *Spooler) Release(ctx context.Context, files upload.Descriptors) error {
	var errs []error
	for _, desc := range files {
		if desc.TempPath == "" {
			continue
		}
		ok, err := s.registry.Has(ctx, desc.TempPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		if err := s.fs.Remove(desc.TempPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		if err := s.registry.Remove(ctx, desc.TempPath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// contentType returns the media type declared in the part header, without
// parameters. Declared by the client, so informational only.
func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mediaType
}
