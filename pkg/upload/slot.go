package upload

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
)

const (
	// DefaultMaxSize is the per-slot size limit: 2 MiB.
	DefaultMaxSize int64 = 2 * file.MiB
	// DefaultDir is the destination used when none was set.
	DefaultDir = "MyUploads"
)

// Slot validates and places one received file. A Slot is not safe for
// concurrent use; create one per file per request.
type Slot struct {
	key  string
	desc Descriptor
	host Host
	fs   afero.Fs

	logger        *slog.Logger
	replicator    Replicator
	dirPerm       os.FileMode
	transliterate bool

	name      string
	extension string
	allowed   []string // nil means any extension
	maxSize   int64
	dir       string

	issues []Issue
	placed string
}

// Option configures a Slot.
type Option func(*Slot)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Slot) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDirPerm sets the mode used when creating the destination directory.
func WithDirPerm(perm os.FileMode) Option {
	return func(s *Slot) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// WithReplicator registers a sink that receives every placed file.
func WithReplicator(r Replicator) Option {
	return func(s *Slot) {
		s.replicator = r
	}
}

// WithTransliteration folds accented letters to ASCII before names are
// sanitized, so "résumé" becomes "resume" instead of "rsum".
func WithTransliteration(enabled bool) Option {
	return func(s *Slot) {
		s.transliterate = enabled
	}
}

// New binds the file received under key to a new Slot.
//
// The declared name is split at its last dot: the base is sanitized and the
// extension lowercased. The size limit starts at DefaultMaxSize and the
// directory is unset, so Upload falls back to DefaultDir.
//
// Errors: ErrNilHost, ErrUploadsDisabled, ErrKeyNotFound, or a *TransferError
// (matching ErrTransfer) when the runtime failed to receive the file.
func New(key string, files Descriptors, host Host, opts ...Option) (*Slot, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if !host.UploadsEnabled() {
		return nil, ErrUploadsDisabled
	}

	desc, ok := files[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if !desc.Code.OK() {
		return nil, &TransferError{Filename: desc.Name, Code: desc.Code}
	}

	s := &Slot{
		key:     key,
		desc:    desc,
		host:    host,
		fs:      host.Fs(),
		logger:  logger.Discard(),
		dirPerm: file.DefaultDirPerm,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	s.logger = s.logger.With(logger.Component("upload"), logger.UploadKey(key))

	base, ext := file.SplitName(desc.Name)
	s.SetName(base)
	s.SetExtension(ext)

	return s, nil
}

// Key returns the form field the file was received under.
func (s *Slot) Key() string {
	return s.key
}

// Descriptor returns the descriptor the slot was built from.
func (s *Slot) Descriptor() Descriptor {
	return s.desc
}

// SetName sanitizes and stores the base name (without extension).
func (s *Slot) SetName(name string) *Slot {
	if s.transliterate {
		name = file.Transliterate(name)
	}
	s.name = file.SanitizeName(name)
	return s
}

func (s *Slot) Name() string {
	return s.name
}

// SetExtension stores the extension lowercased and stripped of leading dots
// and characters not allowed in names.
func (s *Slot) SetExtension(ext string) *Slot {
	s.extension = file.SanitizeExtension(ext)
	return s
}

func (s *Slot) Extension() string {
	return s.extension
}

// NameWithExtension returns "name.ext", "name" when there is no extension,
// or file.DefaultName when both parts are empty.
func (s *Slot) NameWithExtension() string {
	return file.JoinName(s.name, s.extension)
}

// SetMaxSize sets the size limit in bytes. A file exactly at the limit passes.
func (s *Slot) SetMaxSize(bytes int64) *Slot {
	s.maxSize = bytes
	return s
}

func (s *Slot) MaxSize() int64 {
	return s.maxSize
}

// SetDir sets the destination directory. Trailing separators are removed;
// an empty result means DefaultDir.
func (s *Slot) SetDir(dir string) *Slot {
	s.dir = strings.TrimRight(dir, "/"+string(filepath.Separator))
	return s
}

// Dir returns the destination directory. It is empty until set, and becomes
// DefaultDir once Upload has fallen back to it.
func (s *Slot) Dir() string {
	return s.dir
}

// SetAllowed restricts uploads to the given extensions, compared against the
// stored extension of the file. Entries are normalized the same way as
// SetExtension. Calling it with no arguments lifts the restriction.
func (s *Slot) SetAllowed(exts ...string) *Slot {
	if len(exts) == 0 {
		s.allowed = nil
		return s
	}
	s.allowed = make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = file.SanitizeExtension(strings.TrimSpace(ext))
		if !slices.Contains(s.allowed, ext) {
			s.allowed = append(s.allowed, ext)
		}
	}
	return s
}

// Allowed returns the allowed extensions, or nil when unrestricted.
func (s *Slot) Allowed() []string {
	return slices.Clone(s.allowed)
}

// Path returns where the file was placed, or "" before a successful Upload.
func (s *Slot) Path() string {
	return s.placed
}

// Placed reports whether Upload has succeeded.
func (s *Slot) Placed() bool {
	return s.placed != ""
}

// Errors returns the accumulated messages in insertion order.
func (s *Slot) Errors() []string {
	msgs := make([]string, len(s.issues))
	for i, issue := range s.issues {
		msgs[i] = issue.Message
	}
	return msgs
}

// Issues returns the accumulated issues in insertion order.
func (s *Slot) Issues() []Issue {
	return slices.Clone(s.issues)
}

// Err joins all issues into one error, or returns nil when there are none.
// The result matches each issue's sentinel via errors.Is.
func (s *Slot) Err() error {
	if len(s.issues) == 0 {
		return nil
	}
	errs := make([]error, len(s.issues))
	for i, issue := range s.issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}

// ResetErrors empties the error list, e.g. before re-validating with
// different settings.
func (s *Slot) ResetErrors() *Slot {
	s.issues = nil
	return s
}

func (s *Slot) addIssue(err error, msg string) {
	s.issues = append(s.issues, Issue{Err: err, Message: msg})
}

// replaceIssues discards everything collected so far in favour of one issue.
func (s *Slot) replaceIssues(err error, msg string) {
	s.issues = []Issue{{Err: err, Message: msg}}
}
