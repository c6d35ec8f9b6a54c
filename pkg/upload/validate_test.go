package upload_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

func TestSlot_IsValid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reports every failed check", func(t *testing.T) {
		t.Parallel()
		files := upload.Descriptors{"f": {
			Name:     "cat.gif",
			TempPath: "/etc/passwd",
			Size:     3 * file.MiB,
		}}
		slot, err := upload.New("f", files, newHost())
		require.NoError(t, err)
		slot.SetAllowed("png", "jpg")

		assert.False(t, slot.IsValid(ctx))
		assert.Equal(t, []string{
			"This file extension is not allowed. Please upload a (png, jpg) file.",
			"This file is larger than 2 MiB.",
			"cat.gif: is not an uploaded file",
		}, slot.Errors())

		issues := slot.Issues()
		require.Len(t, issues, 3)
		assert.ErrorIs(t, issues[0], upload.ErrExtensionNotAllowed)
		assert.ErrorIs(t, issues[1], upload.ErrFileTooLarge)
		assert.ErrorIs(t, issues[2], upload.ErrNotUploadedFile)
		for i, issue := range issues {
			assert.Equal(t, slot.Errors()[i], issue.Error())
		}

		issues[0].Message = "changed"
		assert.NotEqual(t, "changed", slot.Errors()[0], "Issues returns a copy")

		err = slot.Err()
		assert.ErrorIs(t, err, upload.ErrExtensionNotAllowed)
		assert.ErrorIs(t, err, upload.ErrFileTooLarge)
		assert.ErrorIs(t, err, upload.ErrNotUploadedFile)
	})

	t.Run("passes without restrictions", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "notes.weird", "/tmp/a", []byte("hello"))
		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)

		assert.True(t, slot.IsValid(ctx))
		assert.Empty(t, slot.Errors())
	})

	t.Run("extension matched case-insensitively", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "a.PNG", "/tmp/a", []byte("x"))
		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)

		assert.True(t, slot.SetAllowed("png").IsValid(ctx))
	})

	t.Run("size exactly at limit", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "a.bin", "/tmp/a", []byte("0123456789"))
		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)

		assert.True(t, slot.SetMaxSize(10).IsValid(ctx))
		assert.False(t, slot.SetMaxSize(9).IsValid(ctx))
		assert.Equal(t, []string{"This file is larger than 9 B."}, slot.Errors())
	})

	t.Run("issues accumulate until reset", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "a.gif", "/tmp/a", []byte("x"))
		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)
		slot.SetAllowed("png")

		assert.False(t, slot.IsValid(ctx))
		assert.False(t, slot.IsValid(ctx))
		assert.Len(t, slot.Errors(), 2)

		slot.SetAllowed("gif")
		assert.False(t, slot.IsValid(ctx), "stale issues keep the slot invalid")

		slot.ResetErrors()
		assert.True(t, slot.IsValid(ctx))
		assert.Empty(t, slot.Errors())
		assert.NoError(t, slot.Err())
	})
}
