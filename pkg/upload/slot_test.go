package upload_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil host", func(t *testing.T) {
		t.Parallel()
		_, err := upload.New("f", upload.Descriptors{}, nil)
		assert.ErrorIs(t, err, upload.ErrNilHost)
	})

	t.Run("uploads disabled", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		host.disabled = true
		desc := host.receive(t, "a.png", "/tmp/a", []byte("x"))

		_, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		assert.ErrorIs(t, err, upload.ErrUploadsDisabled)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := upload.New("avatar", upload.Descriptors{}, newHost())
		assert.ErrorIs(t, err, upload.ErrKeyNotFound)
		assert.Contains(t, err.Error(), `"avatar"`)
	})

	t.Run("no file uploaded", func(t *testing.T) {
		t.Parallel()
		files := upload.Descriptors{"f": {Name: "", Code: upload.CodeNoFile}}

		slot, err := upload.New("f", files, newHost())
		require.Error(t, err)
		assert.Nil(t, slot)
		assert.ErrorIs(t, err, upload.ErrTransfer)

		var te *upload.TransferError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, upload.CodeNoFile, te.Code)
		assert.Contains(t, err.Error(), "no file was uploaded")
	})

	t.Run("partial upload names the file", func(t *testing.T) {
		t.Parallel()
		files := upload.Descriptors{"f": {Name: "big.zip", Code: upload.CodePartial}}

		_, err := upload.New("f", files, newHost())
		assert.EqualError(t, err, "big.zip: the uploaded file was only partially uploaded")
	})

	t.Run("derives name and extension", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "Holiday Photo.JPG", "/tmp/a", []byte("x"))

		slot, err := upload.New("photo", upload.Descriptors{"photo": desc}, host)
		require.NoError(t, err)
		assert.Equal(t, "photo", slot.Key())
		assert.Equal(t, "Holiday Photo", slot.Name())
		assert.Equal(t, "jpg", slot.Extension())
		assert.Equal(t, "Holiday Photo.jpg", slot.NameWithExtension())
		assert.Equal(t, upload.DefaultMaxSize, slot.MaxSize())
		assert.Equal(t, int64(2097152), slot.MaxSize())
		assert.Empty(t, slot.Dir())
		assert.Nil(t, slot.Allowed())
		assert.Empty(t, slot.Errors())
		assert.NoError(t, slot.Err())
		assert.Equal(t, desc, slot.Descriptor())
	})

	t.Run("keeps base name case", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "Me.PNG", "/tmp/a", []byte("x"))

		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)
		assert.Equal(t, "Me", slot.Name())
		assert.Equal(t, "png", slot.Extension())
		assert.Equal(t, "Me.png", slot.NameWithExtension())
	})

	t.Run("sanitizes declared extension", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "a.p<h>P", "/tmp/a", []byte("x"))

		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)
		assert.Equal(t, "php", slot.Extension())
		assert.Equal(t, "a.php", slot.NameWithExtension())
	})

	t.Run("strips traversal from declared name", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "../../etc/pass..wd.TXT", "/tmp/a", []byte("x"))

		slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)
		assert.Equal(t, "passwd.txt", slot.NameWithExtension())
	})

	t.Run("transliteration", func(t *testing.T) {
		t.Parallel()
		host := newHost()
		desc := host.receive(t, "résumé.pdf", "/tmp/a", []byte("x"))

		plain, err := upload.New("f", upload.Descriptors{"f": desc}, host)
		require.NoError(t, err)
		assert.Equal(t, "rsum", plain.Name())

		folded, err := upload.New("f", upload.Descriptors{"f": desc}, host, upload.WithTransliteration(true))
		require.NoError(t, err)
		assert.Equal(t, "resume", folded.Name())
	})
}

func TestSlot_Setters(t *testing.T) {
	t.Parallel()
	host := newHost()
	desc := host.receive(t, "a.png", "/tmp/a", []byte("x"))
	slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
	require.NoError(t, err)

	slot.SetName("my/../report").SetExtension(".PDF").SetDir("uploads/docs///").SetMaxSize(10)

	assert.Equal(t, "myreport", slot.Name())
	assert.Equal(t, "pdf", slot.Extension())
	assert.Equal(t, "myreport.pdf", slot.NameWithExtension())
	assert.Equal(t, "uploads/docs", slot.Dir())
	assert.Equal(t, int64(10), slot.MaxSize())

	slot.SetAllowed("PNG", ".jpg", "png")
	assert.Equal(t, []string{"png", "jpg"}, slot.Allowed())

	slot.SetAllowed()
	assert.Nil(t, slot.Allowed())

	slot.SetName("").SetExtension("")
	assert.Equal(t, "unnamed", slot.NameWithExtension())
}

func TestSlot_SanitizedNameNeverEscapes(t *testing.T) {
	t.Parallel()
	host := newHost()
	desc := host.receive(t, "a.png", "/tmp/a", []byte("x"))
	slot, err := upload.New("f", upload.Descriptors{"f": desc}, host)
	require.NoError(t, err)

	for _, name := range []string{"..", "...", "a/../../b", `..\..\windows`, "./.hidden", "a. .b", "..../x"} {
		slot.SetName(name)
		assert.NotContains(t, slot.Name(), "/", name)
		assert.NotContains(t, slot.Name(), `\`, name)
		assert.False(t, strings.Contains(slot.Name(), ".."), name)
	}
}

func TestConfig_Apply(t *testing.T) {
	t.Parallel()
	host := newHost()
	desc := host.receive(t, "a.png", "/tmp/a", []byte("x"))

	cfg := upload.Config{
		Dir:               "uploads/",
		MaxSize:           1024,
		AllowedExtensions: []string{"PNG", "gif"},
		DirPerm:           0o700,
	}
	slot, err := upload.New("f", upload.Descriptors{"f": desc}, host, cfg.Options()...)
	require.NoError(t, err)
	cfg.Apply(slot)

	assert.Equal(t, "uploads", slot.Dir())
	assert.Equal(t, int64(1024), slot.MaxSize())
	assert.Equal(t, []string{"png", "gif"}, slot.Allowed())

	unrestricted, err := upload.New("f", upload.Descriptors{"f": desc}, host)
	require.NoError(t, err)
	upload.Config{Dir: "x"}.Apply(unrestricted)
	assert.Nil(t, unrestricted.Allowed())
}
