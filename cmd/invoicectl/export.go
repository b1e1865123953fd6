package main

import (
	"os"

	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records as one CSV or XLSX table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}

			a, err := opts.open(true)
			if err != nil {
				return err
			}
			defer a.Close()

			store, err := a.RequireStore()
			if err != nil {
				return err
			}
			records, err := store.List()
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return a.Export.Export(cmd.OutOrStdout(), f, records)
			}
			return writeFile(out, func(file *os.File) error {
				return a.Export.Export(file, f, records)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", string(service.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
