package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twclass"
	"github.com/yacobolo/twclass/internal/report"
	"github.com/yacobolo/twclass/internal/scan"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// resetFlags restores every flag of the command tree to its default, so
// flags set by one test do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var defaults []string
			if def := strings.Trim(f.DefValue, "[]"); def != "" {
				defaults = strings.Split(def, ",")
			}
			_ = sv.Replace(defaults)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command in a fresh directory with plain output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	resetKoanf()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	configPath := filepath.Join(dir, defaultConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, t.TempDir(), `
mode: jit
separator: "__"
prefix: tw-
categories: [SPACING, LAYOUT]
verbose: true

scan:
  concurrency: 2
  gitignore: false
  output-format: summary
  paths:
    - "web/**/*.html"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "jit", k.String("mode"))
	assert.Equal(t, "__", k.String("separator"))
	assert.Equal(t, "tw-", k.String("prefix"))
	assert.Equal(t, []string{"SPACING", "LAYOUT"}, k.Strings("categories"))
	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, 2, k.Int("scan.concurrency"))
	assert.False(t, k.Bool("scan.gitignore"))
	assert.Equal(t, "summary", k.String("scan.output-format"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config; should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.twclass.yaml"))

	cfg, err := buildParserConfig()
	require.NoError(t, err)
	assert.Equal(t, twclass.DefaultConfig(), cfg)

	assert.Equal(t, scan.Options{
		Paths:            []string{"**/*.html", "**/*.templ"},
		Concurrency:      scan.DefaultConcurrency,
		RespectGitignore: true,
	}, buildScanOptions())

	opts := buildReportOptions()
	assert.True(t, opts.ShowUnmatched)
	assert.False(t, opts.PrintLines)
}

func TestBuildOptions_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, t.TempDir(), `
mode: JIT
prefix: tw-
scan:
  paths: ["src/**/*.vue"]
  concurrency: 3
  gitignore: false
  show-unmatched: false
  print-lines: true
`)
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildParserConfig()
	require.NoError(t, err)
	assert.Equal(t, twclass.Config{Mode: twclass.ModeJIT, Separator: ":", Prefix: "tw-"}, cfg)

	assert.Equal(t, scan.Options{
		Paths:       []string{"src/**/*.vue"},
		Concurrency: 3,
	}, buildScanOptions())

	opts := buildReportOptions()
	assert.False(t, opts.ShowUnmatched)
	assert.True(t, opts.PrintLines)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, t.TempDir(), `
mode: ""
scan:
  show-unmatched: true
  paths: ["from-file/*.html"]
`)

	// Set env vars that should override config file
	t.Setenv("TWCLASS_MODE", "jit")
	t.Setenv("TWCLASS_SCAN_SHOW_UNMATCHED", "false")
	t.Setenv("TWCLASS_SCAN_PATHS", "a/**/*.html, b/*.templ")

	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildParserConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsJIT())
	assert.False(t, buildReportOptions().ShowUnmatched)
	assert.Equal(t, []string{"a/**/*.html", "b/*.templ"}, buildScanOptions().Paths)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TWCLASS_MODE", "mode"},
		{"TWCLASS_VERBOSE", "verbose"},
		{"TWCLASS_SCAN_PATHS", "scan.paths"},
		{"TWCLASS_SCAN_SHOW_UNMATCHED", "scan.show-unmatched"},
		{"TWCLASS_SCAN_OUTPUT_FORMAT", "scan.output-format"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestBuildParserConfig_InvalidMode(t *testing.T) {
	resetKoanf()
	t.Setenv("TWCLASS_MODE", "aot")
	require.NoError(t, loadConfigFromPath("/nonexistent/.twclass.yaml"))

	_, err := buildParserConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"aot"`)
}

func TestSelectedGroups(t *testing.T) {
	resetKoanf()
	configPath := writeConfig(t, t.TempDir(), "categories: [spacing]\n")
	require.NoError(t, loadConfigFromPath(configPath))

	groups, err := selectedGroups()
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.Equal(t, twclass.CategorySpacing, g.Category)
	}

	resetKoanf()
	configPath = writeConfig(t, t.TempDir(), "categories: [SPACING, ANIMATION]\n")
	require.NoError(t, loadConfigFromPath(configPath))
	_, err = selectedGroups()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANIMATION")
}

func TestGetStringOr(t *testing.T) {
	resetKoanf()

	// No keys set; should return default
	assert.Equal(t, "default", getStringOr("config.key", "default"))
	assert.Equal(t, 7, getIntOr("config.key", 7))
	assert.True(t, getBoolOr("config.key", true))
	assert.Equal(t, []string{"x"}, getStringsOr("config.key", []string{"x"}))
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseList(" a, ,b "))
	assert.Empty(t, parseList(""))
}

func TestParseCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "parse", "sm:dark:overscroll-x-none -my-px", "foo")
	require.NoError(t, err)

	want := "sm:dark:overscroll-x-none → Overscroll Behavior [x] none (sm:dark)\n" +
		"-my-px → Margin [y] -px\n" +
		"foo → unrecognized\n" +
		"\n" +
		"3 tokens (2 recognized, 1 unrecognized)\n"
	require.Equal(t, want, out)
}

func TestParseCommand_StdinJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "p-5\nmd:bg-red-600/50\n", "parse", "--mode", "jit", "-o", "json")
	require.NoError(t, err)

	var decoded report.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "Padding", decoded.Entries[0].Type)
	assert.Equal(t, 1, decoded.Entries[1].Index)
	assert.Equal(t, "BACKGROUNDS", decoded.Entries[1].Type)
	assert.Equal(t, "red-600/50", decoded.Entries[1].Value)
	assert.Equal(t, "color", decoded.Entries[1].Shorthand)
	assert.Equal(t, "md", decoded.Entries[1].Variants)
}

func TestParseCommand_FlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "mode: jit\n")

	out, err := execute(t, "", "parse", "bg-red-600/50")
	require.NoError(t, err)
	assert.Contains(t, out, "BACKGROUNDS [color] red-600/50")

	// An explicitly empty flag selects the legacy mode
	out, err = execute(t, "", "parse", "--mode=", "bg-red-600/50")
	require.NoError(t, err)
	assert.Contains(t, out, "bg-red-600/50 → unrecognized")
}

func TestParseCommand_Quiet(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "parse", "--quiet", "p-5")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<div class="p-4 md:overflow-x-auto btn"></div>`), 0o644))

	out, err := execute(t, "", "scan", "--paths", "*.html")
	require.NoError(t, err)

	want := "index.html:1:13: p-4 → Padding [all] 4\n" +
		"index.html:1:17: md:overflow-x-auto → Overflow [x] auto (md)\n" +
		"index.html:1:36: btn → unrecognized\n" +
		"\n" +
		"3 tokens (2 recognized, 1 unrecognized)\n"
	require.Equal(t, want, out)
}

func TestScanCommand_ConfigAndStrict(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "web"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web", "app.css"),
		[]byte(".btn { @apply p-4 -my-px btn-base; }\n"), 0o644))
	writeConfig(t, dir, `
scan:
  paths: ["web/*.css"]
  output-format: summary
  strict: true
`)

	out, err := execute(t, "", "scan")
	require.ErrorIs(t, err, errUnrecognized)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Contains(t, out, "Total Tokens:   3")
	assert.Contains(t, out, "Padding")
	assert.Contains(t, out, "Margin")
}

func TestGroupsCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "groups", "--categories", "layout")
	require.NoError(t, err)

	want := "LAYOUT\n" +
		"  Overflow\n" +
		"  Overscroll Behavior\n" +
		"  Top / Right / Bottom / Left\n" +
		"  Z-Index\n"
	require.Equal(t, want, out)
}

func TestGroupsCommand_AllCategories(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "groups")
	require.NoError(t, err)
	for _, category := range twclass.Categories(twclass.DefaultGroups()) {
		assert.Contains(t, out, category+"\n")
	}
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "", "init")
	require.NoError(t, err)
	assert.Equal(t, "Created .twclass.yaml\n", out)

	// The generated file loads and yields the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(defaultConfigFile))
	cfg, err := buildParserConfig()
	require.NoError(t, err)
	assert.Equal(t, twclass.DefaultConfig(), cfg)
	assert.Equal(t, scan.Options{
		Paths:            []string{"**/*.html", "**/*.templ"},
		Concurrency:      8,
		RespectGitignore: true,
	}, buildScanOptions())
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigFile, []byte("existing"), 0o644))

	_, err := execute(t, "", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(defaultConfigFile, []byte("existing"), 0o644))

	_, err := execute(t, "", "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(defaultConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan:")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "twclass dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "twclass")

	_, err = execute(t, "", "completion", "tcsh")
	require.Error(t, err)
}
