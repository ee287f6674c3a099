package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/twclass/internal/logging"
	"github.com/yacobolo/twclass/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "twclass",
	Short: "Utility-class parser for Tailwind-style class lists",
	Long: `Decompose utility classes into variants, property group, shorthand and value.
Tokens come from the command line, from stdin, or from a scan of project files:

  twclass parse "sm:dark:overscroll-x-none md:-my-px"
  twclass scan --paths "web/**/*.html"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.String("config", defaultConfigFile, "Config file path")
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.BoolP("quiet", "q", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("mode", "", "Tokenization mode: jit or empty for legacy")
	f.String("separator", ":", "Variant separator")
	f.String("prefix", "", "Class prefix, e.g. tw-")
	f.StringSlice("categories", nil, "Catalog categories to match (default: all)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the diagnostics logger from the loaded configuration.
// It writes to the command's stderr.
func newLogger(cmd *cobra.Command) *zap.Logger {
	return logging.New(cmd.ErrOrStderr(), logging.Options{
		Verbose: getBoolOr("verbose", false),
		Quiet:   getBoolOr("quiet", false),
		Color:   report.ShouldUseColors(getBoolOr("color", false)),
	})
}
