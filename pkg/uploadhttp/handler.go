package uploadhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
	"github.com/dmitrymomot/uploadslot/pkg/spool"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

// NameField is the optional form field overriding the stored base name.
const NameField = "name"

// Handler accepts single-file uploads: POST /{key} stores the file sent
// under form field key according to the upload.Config.
type Handler struct {
	spooler        *spool.Spooler
	cfg            upload.Config
	replicator     upload.Replicator
	logger         *slog.Logger
	maxMemory      int64
	maxRequestSize int64
}

// Option configures Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithReplicator passes r to every slot, e.g. a *file.S3Mirror.
func WithReplicator(r upload.Replicator) Option {
	return func(h *Handler) {
		h.replicator = r
	}
}

// WithMaxMemory sets how much of a multipart form is buffered in memory.
func WithMaxMemory(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}

// WithMaxRequestSize rejects request bodies larger than n with 413.
// Zero disables the check.
func WithMaxRequestSize(n int64) Option {
	return func(h *Handler) {
		h.maxRequestSize = n
	}
}

func NewHandler(sp *spool.Spooler, cfg upload.Config, opts ...Option) *Handler {
	h := &Handler{
		spooler:   sp,
		cfg:       cfg,
		logger:    logger.Discard(),
		maxMemory: spool.DefaultMaxMemory,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("uploadhttp"))
	return h
}

// Routes returns the router to mount, e.g. r.Mount("/uploads", h.Routes()).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{key}", h.upload)
	return r
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")

	if h.maxRequestSize > 0 {
		if r.ContentLength > h.maxRequestSize {
			writeError(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files, err := h.spooler.FromRequest(ctx, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer func() {
		if err := h.spooler.Release(ctx, files); err != nil {
			h.logger.WarnContext(ctx, "failed to release spooled files", logger.Error(err))
		}
	}()

	opts := append(h.cfg.Options(), upload.WithLogger(h.logger))
	if h.replicator != nil {
		opts = append(opts, upload.WithReplicator(h.replicator))
	}
	slot, err := upload.New(key, files, h.spooler, opts...)
	if err != nil {
		h.logger.DebugContext(ctx, "upload refused", logger.UploadKey(key), logger.Error(err))
		writeError(w, ingestStatus(err), err.Error())
		return
	}

	h.cfg.Apply(slot)
	if name := r.FormValue(NameField); name != "" {
		slot.SetName(name)
	}

	if !slot.Upload(ctx) {
		writeJSON(w, http.StatusUnprocessableEntity, Response{Errors: slot.Errors()})
		return
	}

	writeJSON(w, http.StatusCreated, Response{OK: true, File: describe(slot)})
}

func ingestStatus(err error) int {
	switch {
	case errors.Is(err, upload.ErrUploadsDisabled):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// FileInfo describes a stored file.
type FileInfo struct {
	Key              string           `json:"key"`
	Name             string           `json:"name"`
	Path             string           `json:"path"`
	Size             int64            `json:"size"`
	MimeType         string           `json:"mime_type"`
	DetectedMimeType string           `json:"detected_mime_type,omitempty"`
	MD5              string           `json:"md5,omitempty"`
	Dimensions       *file.Dimensions `json:"dimensions,omitempty"`
}

// describe reads the placed file; inspection failures only leave fields empty.
func describe(slot *upload.Slot) *FileInfo {
	info := &FileInfo{
		Key:      slot.Key(),
		Name:     slot.NameWithExtension(),
		Path:     slot.Path(),
		Size:     slot.Size(),
		MimeType: slot.Mimetype(),
	}
	if mt, err := slot.DetectedMimetype(); err == nil {
		info.DetectedMimeType = mt
	}
	if sum, err := slot.MD5(); err == nil {
		info.MD5 = sum
	}
	if dim, err := slot.Dimensions(); err == nil {
		info.Dimensions = &dim
	}
	return info
}
