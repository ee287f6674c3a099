package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twclass"
	"github.com/yacobolo/twclass/internal/report"
	"github.com/yacobolo/twclass/internal/scan"
)

const (
	defaultConfigFile = ".twclass.yaml"
	envPrefix         = "TWCLASS_"
)

var defaultScanPaths = []string{"**/*.html", "**/*.templ"}

var k = koanf.New(".")

// configSections are the commands whose local flags live under a config
// section named after the command: scan --paths -> scan.paths.
var configSections = map[string]bool{
	"scan": true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set;
	// defaults live in the getters so they never shadow the file)
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return flagKey(cmd, f.Name), posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWCLASS_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func flagKey(cmd *cobra.Command, name string) string {
	if configSections[cmd.Name()] && cmd.LocalNonPersistentFlags().Lookup(name) != nil {
		return cmd.Name() + "." + name
	}
	return name
}

// envKey maps an environment variable to its config key:
// TWCLASS_MODE -> mode, TWCLASS_SCAN_SHOW_UNMATCHED -> scan.show-unmatched
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "scan_"); ok {
		return "scan." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildParserConfig constructs the parser's Config from koanf state.
func buildParserConfig() (twclass.Config, error) {
	cfg := twclass.Config{
		Mode:      strings.ToLower(getStringOr("mode", "")),
		Separator: getStringOr("separator", twclass.DefaultSeparator),
		Prefix:    getStringOr("prefix", ""),
	}
	if cfg.Mode != "" && cfg.Mode != twclass.ModeJIT {
		return cfg, fmt.Errorf("unknown mode %q (want %q or empty)", cfg.Mode, twclass.ModeJIT)
	}
	return cfg, nil
}

// selectedGroups narrows the default catalog to the configured categories.
func selectedGroups() ([]twclass.Group, error) {
	groups := twclass.DefaultGroups()
	categories := getStringsOr("categories", nil)
	known := twclass.Categories(groups)

	for i, c := range categories {
		categories[i] = strings.ToUpper(c)
		if !slices.Contains(known, categories[i]) {
			return nil, fmt.Errorf("unknown category %q (known: %s)", c, strings.Join(known, ", "))
		}
	}
	return twclass.Select(groups, categories...), nil
}

// buildScanOptions constructs the scanner's Options from koanf state.
func buildScanOptions() scan.Options {
	return scan.Options{
		Paths:            getStringsOr("scan.paths", defaultScanPaths),
		Concurrency:      getIntOr("scan.concurrency", scan.DefaultConcurrency),
		RespectGitignore: getBoolOr("scan.gitignore", true),
	}
}

// buildReportOptions constructs the report Options from koanf state.
func buildReportOptions() report.Options {
	return report.Options{
		UseColors:     report.ShouldUseColors(getBoolOr("color", false)),
		ShowUnmatched: getBoolOr("scan.show-unmatched", true),
		PrintLines:    getBoolOr("scan.print-lines", false),
	}
}

// getStringOr returns the value at key, or defaultVal when unset or empty.
func getStringOr(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolOr returns the value at key, or defaultVal when unset.
func getBoolOr(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getIntOr returns the value at key, or defaultVal when unset.
func getIntOr(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}

// getStringsOr returns the list at key, or defaultVal when unset or empty.
// A single comma-separated string (from the environment) is split.
func getStringsOr(key string, defaultVal []string) []string {
	var values []string
	for _, v := range k.Strings(key) {
		values = append(values, parseList(v)...)
	}
	if len(values) == 0 {
		if s := k.String(key); s != "" {
			values = parseList(s)
		}
	}
	if len(values) == 0 {
		return defaultVal
	}
	return values
}

// parseList splits comma-separated values into a slice
func parseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
