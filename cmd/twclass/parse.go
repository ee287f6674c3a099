package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/twclass"
	"github.com/yacobolo/twclass/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse [tokens...]",
	Short: "Parse utility-class tokens",
	Long: `Parse whitespace-separated utility-class tokens given as arguments.
With no arguments the tokens are read from stdin.`,
	Example: `  twclass parse "sm:dark:overscroll-x-none -my-px"
  echo "p-5 md:bg-red-600/50" | twclass parse --mode jit -o json`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("output-format", "o", "text", "Output format: text|json|summary")
}

func runParse(cmd *cobra.Command, args []string) error {
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

	input := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	parsed := twclass.ParseAll(input, groups, cfg)
	log.Debug("parsed tokens", zap.Int("tokens", len(parsed)), zap.Int("groups", len(groups)))

	if getBoolOr("quiet", false) {
		return nil
	}

	entries := make([]report.Entry, len(parsed))
	for i, p := range parsed {
		entries[i] = report.Entry{Parsed: p}
	}

	opts := buildReportOptions()
	opts.ShowUnmatched = true
	format := report.ParseFormat(getStringOr("output-format", "text"))
	return report.Write(cmd.OutOrStdout(), entries, format, opts)
}
