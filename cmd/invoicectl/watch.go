package main

import (
	"os"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		debounce    time.Duration
		initialScan bool
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Extract documents as they appear in directories",
		Long:  `Watches directories recursively and stores a record for every PDF or image written to them. Runs until interrupted.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			events, errs, err := service.StartWatcher(ctx, service.WatchConfig{
				Roots:       args,
				InitialScan: initialScan,
				Debounce:    debounce,
				Logger:      opts.logger,
			})
			if err != nil {
				return err
			}
			opts.logger.Info("watch.started", "roots", args)

			for {
				select {
				case path, ok := <-events:
					if !ok {
						return nil
					}
					data, err := os.ReadFile(path)
					if err != nil {
						opts.logger.Warn("watch.read.failed", "path", path, "err", err)
						continue
					}
					rec, err := a.Extraction.ProcessDocument(ctx, service.Document{Filename: path, Data: data})
					if err != nil {
						opts.logger.Warn("watch.extract.failed", "path", path, "err", err)
						continue
					}
					if err := writeJSON(cmd.OutOrStdout(), rec); err != nil {
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					opts.logger.Warn("watch.error", "err", err)
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "wait this long after the last write before processing")
	cmd.Flags().BoolVar(&initialScan, "initial-scan", true, "process files already present")
	return cmd
}
