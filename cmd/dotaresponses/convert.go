package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dotaresponses/internal/corpus"
)

// newConvertCmd reshapes spider output into a grouped corpus. Unlike serving,
// a corpus that cannot be loaded here is always an error.
func newConvertCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a scraped responses file into a grouped corpus",
		Long: "Reads either a grouped corpus or the spider's flat item list and writes a grouped corpus.\n" +
			"Encodings default to the file extensions (.json, .yaml, .msgpack).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			inFormat, err := corpus.ParseFormat(from)
			if err != nil {
				return err
			}
			outFormat, err := corpus.ParseFormat(to)
			if err != nil {
				return err
			}
			if outFormat == "" {
				outFormat = corpus.FormatFromPath(out)
			}

			c, err := corpus.LoadFormat(in, inFormat)
			if err != nil {
				return err
			}
			if err := writeCorpus(out, c, outFormat); err != nil {
				return err
			}
			a.logger.Info("corpus converted", "input", in, "output", out, "format", outFormat, "groups", c.Len(), "responses", c.Size())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d groups, %d responses to %s\n", c.Len(), c.Size(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Input encoding (default: from extension)")
	cmd.Flags().StringVar(&to, "to", "", "Output encoding (default: from extension)")
	return cmd
}

// writeCorpus writes to a temporary file and renames it into place so a
// watching server never sees a half-written corpus.
func writeCorpus(path string, c *corpus.Corpus, format corpus.Format) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := corpus.Encode(f, c, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
