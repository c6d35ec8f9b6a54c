package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the uploadctl command tree. All file access goes
// through fs; command output is written to out.
func NewRootCommand(ctx context.Context, fs afero.Fs, out io.Writer, log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "uploadctl",
		Short: "Inspect and place files the way the upload server does.",
		Long: `uploadctl runs the upload validation and placement rules locally:
format sizes, inspect a file (type, digests, image dimensions) or place a
file into a directory under a sanitized name.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(NewSizeCommand(out))
	root.AddCommand(NewInspectCommand(fs, out))
	root.AddCommand(NewPlaceCommand(ctx, fs, out, log))
	root.AddCommand(NewAlgorithmsCommand(out))
	return root
}
