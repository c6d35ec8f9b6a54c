package spool_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

type part struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

// newMultipartRequest builds a POST request carrying the given form values and files.
func newMultipartRequest(t *testing.T, values map[string]string, parts ...part) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

// failingRegistry rejects every operation.
type failingRegistry struct{}

var errRegistryDown = errors.New("registry down")

func (failingRegistry) Add(context.Context, string) error {
	return errRegistryDown
}

func (failingRegistry) Has(context.Context, string) (bool, error) {
	return false, errRegistryDown
}

func (failingRegistry) Remove(context.Context, string) error {
	return errRegistryDown
}
