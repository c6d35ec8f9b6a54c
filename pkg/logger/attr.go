package logger

import (
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Messages records user-facing validation messages under "issues".
func Messages(msgs []string) slog.Attr {
	if len(msgs) == 0 {
		return slog.Attr{}
	}
	return slog.Any("issues", msgs)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// UploadKey records the form field a file arrived under.
func UploadKey(key string) slog.Attr {
	return slog.String("upload_key", key)
}

func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

func Path(p string) slog.Attr {
	return slog.String("path", p)
}

func Dir(d string) slog.Attr {
	return slog.String("dir", d)
}

// Size records a byte count both raw and humanized ("1.5 MiB").
func Size(bytes int64) slog.Attr {
	if bytes < 0 {
		return slog.Int64("size", bytes)
	}
	return Group("size",
		slog.Int64("bytes", bytes),
		slog.String("human", humanize.IBytes(uint64(bytes))),
	)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
