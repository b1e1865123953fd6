package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newTextCmd(opts *rootOptions) *cobra.Command {
	var (
		store  bool
		asCSV  bool
		source string
	)

	cmd := &cobra.Command{
		Use:   "text [file|-]",
		Short: "Extract a record from already-recognised text",
		Long:  `Reads OCR text from a file or stdin and prints the extracted record. No OCR engine is involved.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
				if source == "" {
					source = args[0]
				}
			}
			if err != nil {
				return err
			}

			a, err := opts.open(store)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Extraction.ProcessText(cmd.Context(), string(data), source, store)
			if err != nil {
				return err
			}
			if asCSV {
				return a.Export.RecordCSV(cmd.OutOrStdout(), rec.Record)
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "persist the record")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print the flat record as CSV instead of JSON")
	cmd.Flags().StringVar(&source, "source", "", "source file name recorded with the result")
	return cmd
}
