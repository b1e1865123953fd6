package main

import (
	"fmt"

	"github.com/Aashish23092/ocr-invoice-extraction/utils/invoice"
	"github.com/spf13/cobra"
)

func newPatternsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Print the effective pattern library as YAML",
		Long:  `Prints the built-in patterns merged with --patterns (or PATTERNS_FILE). The output is a valid overrides file and every expression in it has been compiled.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patterns := invoice.DefaultPatterns()
			if opts.cfg.PatternsFile != "" {
				p, err := invoice.LoadPatternFile(opts.cfg.PatternsFile)
				if err != nil {
					return err
				}
				patterns = p
			}
			if _, err := patterns.Compile(); err != nil {
				return fmt.Errorf("invalid patterns: %w", err)
			}

			data, err := patterns.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
