package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twclass.yaml config file",
	Long:  `Create a .twclass.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# twclass configuration
# Docs: https://github.com/yacobolo/twclass

# Parser settings
mode: ""           # "" (legacy) | jit
separator: ":"
prefix: ""         # e.g. tw-
categories: []     # empty = all, e.g. [LAYOUT, SPACING]
verbose: false

# Scan settings
scan:
  paths:
    - "**/*.html"
    - "**/*.templ"
  concurrency: 8
  gitignore: true
  output-format: text  # text | summary | json
  show-unmatched: true
  print-lines: false
  strict: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
