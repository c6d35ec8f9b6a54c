package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestMessages(t *testing.T) {
	attr := logger.Messages([]string{"too big"})
	require.Equal(t, "issues", attr.Key)
	assert.Equal(t, []string{"too big"}, attr.Value.Any())

	assert.True(t, logger.Messages(nil).Equal(slog.Attr{}))
}

func TestSize(t *testing.T) {
	attr := logger.Size(1536)
	require.Equal(t, "size", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, int64(1536), g[0].Value.Int64())
	assert.Equal(t, "1.5 KiB", g[1].Value.String())

	neg := logger.Size(-1)
	assert.Equal(t, int64(-1), neg.Value.Int64())
}

func TestUploadAttrs(t *testing.T) {
	assert.Equal(t, "upload_key", logger.UploadKey("avatar").Key)
	assert.Equal(t, "filename", logger.Filename("me.png").Key)
	assert.Equal(t, "path", logger.Path("a/b").Key)
	assert.Equal(t, "dir", logger.Dir("a").Key)
	assert.Equal(t, "component", logger.Component("spool").Key)

	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.Any())
	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))
}
