package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/app"
	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/spf13/cobra"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var (
		outDir  string
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract records from PDF and image files",
		Long:  `Runs OCR and extraction on each file, stores the records and prints them as JSON. With --out-dir a one-row CSV is also written per file.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(!noStore)
			if err != nil {
				return err
			}
			defer a.Close()

			docs := make([]service.Document, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				docs = append(docs, service.Document{Filename: path, Data: data})
			}

			results := a.Extraction.ProcessBatch(cmd.Context(), docs)

			if outDir != "" {
				if err := writeRecordCSVs(a, outDir, results); err != nil {
					return err
				}
			}
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			for _, r := range results {
				if r.Error == "" {
					return nil
				}
			}
			return errors.New("no document could be processed")
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "write <name>.csv for each processed file into this directory")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist records")
	return cmd
}

func writeRecordCSVs(a *app.App, outDir string, results []dto.FileResult) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	for _, r := range results {
		if r.Record == nil {
			continue
		}
		base := filepath.Base(r.Filename)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
		if err := writeFile(filepath.Join(outDir, name), func(f *os.File) error {
			return a.Export.RecordCSV(f, r.Record.Record)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
