package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/app"
	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags. Flags that are set override the
// environment read by config.LoadConfig.
type rootOptions struct {
	dbPath     string
	patterns   string
	workers    int
	tessdata   string
	language   string
	paddleURL  string
	ocrTimeout time.Duration
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Extract structured records from invoices and receipts",
		Long:          `Runs OCR and field extraction on invoice and receipt scans, stores the records and exports them as CSV or XLSX.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", "", "bbolt record store path (env DB_PATH)")
	flags.StringVar(&opts.patterns, "patterns", "", "YAML pattern overrides (env PATTERNS_FILE)")
	flags.IntVar(&opts.workers, "workers", 0, "concurrent documents (env MAX_WORKERS)")
	flags.StringVar(&opts.tessdata, "tessdata", "", "tessdata directory (env TESSDATA_PREFIX)")
	flags.StringVar(&opts.language, "lang", "", "tesseract language (env OCR_LANGUAGE)")
	flags.StringVar(&opts.paddleURL, "paddle-url", "", "PaddleOCR endpoint (env PADDLEOCR_API_URL)")
	flags.DurationVar(&opts.ocrTimeout, "ocr-timeout", 0, "per-image OCR timeout (env OCR_TIMEOUT)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	cmd.AddCommand(
		newExtractCmd(opts),
		newTextCmd(opts),
		newWatchCmd(opts),
		newExportCmd(opts),
		newPatternsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("patterns") {
		cfg.PatternsFile = o.patterns
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = o.workers
	}
	if flags.Changed("tessdata") {
		cfg.TesseractDataPath = o.tessdata
	}
	if flags.Changed("lang") {
		cfg.OCRLanguage = o.language
	}
	if flags.Changed("paddle-url") {
		cfg.PaddleOCRURL = o.paddleURL
	}
	if flags.Changed("ocr-timeout") {
		cfg.OCRTimeout = o.ocrTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// open builds the services. Without withStore the record store is not opened,
// so read-only commands do not contend for the bbolt file lock.
func (o *rootOptions) open(withStore bool) (*app.App, error) {
	cfg := *o.cfg
	if !withStore {
		cfg.DBPath = ""
	}
	return app.New(&cfg, o.logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
