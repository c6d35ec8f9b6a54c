package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/uploadslot/pkg/file"
)

// runSize prints each size as bytes and as the label used in validation
// messages. Arguments accept units ("2MiB", "1.5 GB").
func runSize(out io.Writer, args []string) error {
	for _, arg := range args {
		n, err := humanize.ParseBytes(arg)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", arg, err)
		}
		if _, err := fmt.Fprintf(out, "%d\t%s\n", n, file.FormatSize(int64(n))); err != nil {
			return err
		}
	}
	return nil
}

func NewSizeCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "size [bytes...]",
		Example: "$ uploadctl size 1536 2MiB",
		Short:   "Format byte counts like validation messages do",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSize(out, args)
		},
	}
}

func NewAlgorithmsCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported digest algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range file.HashAlgorithms() {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
