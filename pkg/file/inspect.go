package file

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MIMEOctetStream is the content type of unidentified binary data.
const MIMEOctetStream = "application/octet-stream"

// Dimensions holds the pixel size of a raster image.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// GetDimensions decodes only the image header of the file at path and
// returns its width and height. Supports GIF, JPEG, PNG, BMP, TIFF and WebP.
// Returns ErrNotAnImage when the content is not a decodable raster image.
func GetDimensions(fs afero.Fs, path string) (Dimensions, error) {
	f, err := open(fs, path)
	if err != nil {
		return Dimensions{}, err
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// DetectMIME identifies the MIME type of the file at path from its magic bytes,
// ignoring whatever the client declared. Unknown content yields
// "application/octet-stream".
func DetectMIME(fs afero.Fs, path string) (string, error) {
	f, err := open(fs, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}
	return mt.String(), nil
}

// open opens a regular file, mapping failures to package errors.
func open(fs afero.Fs, path string) (afero.File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}
