package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/uploadslot/pkg/file"
)

// Report is what inspect prints.
type Report struct {
	Path       string            `json:"path" yaml:"path"`
	Name       string            `json:"name" yaml:"name"`
	Size       int64             `json:"size" yaml:"size"`
	SizeLabel  string            `json:"size_label" yaml:"size_label"`
	MimeType   string            `json:"mime_type" yaml:"mime_type"`
	Hashes     map[string]string `json:"hashes" yaml:"hashes"`
	Dimensions *file.Dimensions  `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

func inspect(fs afero.Fs, path string, algorithms []string) (*Report, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", file.ErrIsDirectory, path)
	}

	rep := &Report{
		Path:      path,
		Name:      file.SafeName(filepath.Base(path)),
		Size:      info.Size(),
		SizeLabel: file.FormatSize(info.Size()),
		Hashes:    make(map[string]string, len(algorithms)),
	}

	if rep.MimeType, err = file.DetectMIME(fs, path); err != nil {
		return nil, err
	}
	for _, alg := range algorithms {
		sum, err := file.Hash(fs, path, alg)
		if err != nil {
			return nil, err
		}
		rep.Hashes[alg] = sum
	}

	dim, err := file.GetDimensions(fs, path)
	switch {
	case err == nil:
		rep.Dimensions = &dim
	case !errors.Is(err, file.ErrNotAnImage):
		return nil, err
	}
	return rep, nil
}

func writeReport(out io.Writer, rep *Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "path\t%s\n", rep.Path)
		fmt.Fprintf(tw, "safe name\t%s\n", rep.Name)
		fmt.Fprintf(tw, "size\t%s (%s bytes)\n", humanize.IBytes(uint64(rep.Size)), humanize.Comma(rep.Size))
		fmt.Fprintf(tw, "type\t%s\n", rep.MimeType)
		if rep.Dimensions != nil {
			fmt.Fprintf(tw, "dimensions\t%dx%d\n", rep.Dimensions.Width, rep.Dimensions.Height)
		}
		for _, alg := range sortedKeys(rep.Hashes) {
			fmt.Fprintf(tw, "%s\t%s\n", alg, rep.Hashes[alg])
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q: use text, json or yaml", format)
	}
}

func NewInspectCommand(fs afero.Fs, out io.Writer) *cobra.Command {
	var (
		algorithms []string
		format     string
	)
	cmd := &cobra.Command{
		Use:     "inspect [file]",
		Example: "$ uploadctl inspect photo.jpg --hash sha256 -o yaml",
		Short:   "Show detected type, digests and image dimensions of a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := inspect(fs, args[0], algorithms)
			if err != nil {
				return err
			}
			return writeReport(out, rep, format)
		},
	}
	cmd.Flags().StringSliceVar(&algorithms, "hash", []string{file.DefaultHash}, "digest algorithms (see 'uploadctl algorithms')")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}
