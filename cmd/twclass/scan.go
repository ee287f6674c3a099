package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/twclass"
	"github.com/yacobolo/twclass/internal/report"
	"github.com/yacobolo/twclass/internal/scan"
)

// errUnrecognized fails a strict scan.
var errUnrecognized = errors.New("unrecognized classes found")

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse the utility classes used in project files",
	Long: `Find class attributes in HTML, templ, JSX and CSS (@apply) files and parse
every token. Generated *_templ.go files are skipped, their classes are read
from the .templ source.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringSlice("paths", defaultScanPaths, "File patterns to scan for class attributes")
	f.Int("concurrency", scan.DefaultConcurrency, "Files scanned in parallel")
	f.Bool("gitignore", true, "Skip files matched by ./.gitignore")
	f.StringP("output-format", "o", "text", "Output format: text|summary|json")
	f.Bool("show-unmatched", true, "Report unrecognized classes")
	f.Bool("print-lines", false, "Show source lines under each class")
	f.Bool("strict", false, "Exit 1 when any class is unrecognized (CI mode)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	log := newLogger(cmd)
	defer func() { _ = log.Sync() }()

	cfg, err := buildParserConfig()
	if err != nil {
		return err
	}
	groups, err := selectedGroups()
	if err != nil {
		return err
	}

	opts := buildScanOptions()
	log.Debug("scanning", zap.Strings("paths", opts.Paths), zap.Int("concurrency", opts.Concurrency))

	result, err := scan.New(opts, log).Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if result.Err != nil {
		log.Warn("some files could not be read", zap.Error(result.Err))
	}

	entries := make([]report.Entry, len(result.Tokens))
	unrecognized := 0
	for i, tok := range result.Tokens {
		parsed := twclass.Parse(tok.Class, groups, cfg, tok.Index)
		if !parsed.Matched() {
			unrecognized++
		}
		entries[i] = report.Entry{Token: tok, Parsed: parsed}
	}
	log.Debug("scan complete",
		zap.Int("files", result.Stats.FilesScanned),
		zap.Int("skipped", result.Stats.FilesSkipped),
		zap.Int("tokens", len(entries)))

	if !getBoolOr("quiet", false) {
		format := report.ParseFormat(getStringOr("scan.output-format", "text"))
		if err := report.Write(cmd.OutOrStdout(), entries, format, buildReportOptions()); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if getBoolOr("scan.strict", false) && unrecognized > 0 {
		return fmt.Errorf("%w: %d of %d", errUnrecognized, unrecognized, len(entries))
	}
	return nil
}
