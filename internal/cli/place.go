package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/uploadslot/pkg/spool"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
)

// ErrRejected is returned when the file did not pass validation or placement.
var ErrRejected = errors.New("file rejected")

type placeOptions struct {
	dir     string
	allow   []string
	maxSize string
	name    string
	tempDir string
}

// runPlace feeds src through the same spool and slot the server uses. The
// source file is copied, never moved.
func runPlace(ctx context.Context, fs afero.Fs, out io.Writer, log *slog.Logger, src string, opts placeOptions) error {
	maxSize := upload.DefaultMaxSize
	if opts.maxSize != "" {
		n, err := humanize.ParseBytes(opts.maxSize)
		if err != nil {
			return fmt.Errorf("invalid --max-size %q: %w", opts.maxSize, err)
		}
		maxSize = int64(n)
	}

	if opts.tempDir == "" {
		opts.tempDir = filepath.Join(os.TempDir(), "uploadctl")
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	sp := spool.New(fs, spool.NewMemoryRegistry(),
		spool.WithDir(opts.tempDir),
		spool.WithMaxFileSize(0),
		spool.WithLogger(log),
	)
	const key = "file"
	files := upload.Descriptors{key: sp.SpoolReader(ctx, filepath.Base(src), "", in)}
	defer func() { _ = sp.Release(ctx, files) }()

	slot, err := upload.New(key, files, sp, upload.WithLogger(log))
	if err != nil {
		return err
	}
	slot.SetDir(opts.dir).SetMaxSize(maxSize)
	if len(opts.allow) > 0 {
		slot.SetAllowed(opts.allow...)
	}
	if opts.name != "" {
		slot.SetName(opts.name)
	}

	if !slot.Upload(ctx) {
		for _, msg := range slot.Errors() {
			fmt.Fprintln(out, msg)
		}
		return ErrRejected
	}
	_, err = fmt.Fprintln(out, slot.Path())
	return err
}

func NewPlaceCommand(ctx context.Context, fs afero.Fs, out io.Writer, log *slog.Logger) *cobra.Command {
	var opts placeOptions
	cmd := &cobra.Command{
		Use:     "place [file]",
		Example: "$ uploadctl place ./Me.PNG --dir uploads/avatars --allow png,jpg --max-size 512KiB",
		Short:   "Validate a file and copy it into a directory under a sanitized name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, ext := range opts.allow {
				opts.allow[i] = strings.TrimSpace(ext)
			}
			return runPlace(ctx, fs, out, log, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.dir, "dir", upload.DefaultDir, "destination directory")
	cmd.Flags().StringSliceVar(&opts.allow, "allow", nil, "allowed extensions, e.g. png,jpg")
	cmd.Flags().StringVar(&opts.maxSize, "max-size", "", "size limit, e.g. 2MiB (default 2 MiB)")
	cmd.Flags().StringVar(&opts.name, "name", "", "base name to store the file under")
	cmd.Flags().StringVar(&opts.tempDir, "temp-dir", "", "spool directory (default $TMPDIR/uploadctl)")
	return cmd
}
