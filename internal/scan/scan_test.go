package scan

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIsTemplGenerated(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"standard templ generated (_templ.go)", "internal/web/features/sidebar_templ.go", true},
		{"alternate templ generated (.templ.go)", "internal/web/features/sidebar.templ.go", true},
		{"regular go file", "internal/api/handlers.go", false},
		{"templ source file", "internal/web/features/sidebar.templ", false},
		{"file with templ in name but not generated", "internal/templates/handler.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, isTemplGenerated(tt.path), "isTemplGenerated(%q)", tt.path)
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "web/page.templ", `<div class="p-4"></div>`)
	writeFile(t, dir, "web/page_templ.go", `templ.Classes("p-4")`)
	index := writeFile(t, dir, "web/nested/index.html", `<div class="m-4"></div>`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "web/empty.html"), 0o755))

	s := New(Options{Paths: []string{
		filepath.Join(dir, "web/**/*"),
		filepath.Join(dir, "web/*.templ"), // overlaps the first pattern
	}}, nil)

	files, stats, err := s.Files()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{page, index}, files)
	assert.Equal(t, Stats{FilesDiscovered: 3, FilesScanned: 2, FilesSkipped: 1}, stats)
}

func TestFilesInvalidPattern(t *testing.T) {
	s := New(Options{Paths: []string{"web/[.html"}}, nil)
	_, _, err := s.Files()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web/[.html")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.html", "<div class=\"p-5 lg:dark:overflow-auto\"></div>\n")
	writeFile(t, dir, "a.templ", "package views\n\ntempl Card() {\n\t<div class=\"rounded-tl-lg\"></div>\n}\n")
	writeFile(t, dir, "c.css", ".btn { @apply -my-px; }\n")

	s := New(Options{Paths: []string{filepath.Join(dir, "*")}, Concurrency: 2}, nil)
	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.NoError(t, result.Err)

	assert.Equal(t, []string{"rounded-tl-lg", "p-5", "lg:dark:overflow-auto", "-my-px"}, classes(result.Tokens))
	assert.Equal(t, filepath.Join(dir, "a.templ"), result.Tokens[0].File)
	assert.Equal(t, 4, result.Tokens[0].Line)
	assert.Equal(t, 3, result.Stats.FilesScanned)
}

func TestScanCollectsFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.html", `<b class="p-1"></b>`)
	s := New(Options{}, nil)

	_, err := s.ScanFile(filepath.Join(dir, "missing.html"))
	require.Error(t, err)

	// Unreadable files are reported, not fatal
	locked := writeFile(t, dir, "locked.html", `<b class="p-2"></b>`)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })
	if _, err := os.ReadFile(locked); err == nil {
		t.Skip("file permissions are not enforced for this user")
	}

	s = New(Options{Paths: []string{filepath.Join(dir, "*.html")}}, nil)
	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"p-1"}, classes(result.Tokens))
	require.Len(t, multierr.Errors(result.Err), 1)
	assert.Contains(t, result.Err.Error(), "locked.html")
}

func TestScanReportsOverlongLine(t *testing.T) {
	dir := t.TempDir()
	long := writeFile(t, dir, "bundle.tsx", `<div className="p-4">`+strings.Repeat("x", 2<<20)+"\n"+`<span className="m-2"/>`)
	writeFile(t, dir, "ok.tsx", `<b className="p-1"/>`)

	s := New(Options{Paths: []string{filepath.Join(dir, "*.tsx")}}, nil)

	tokens, err := s.ScanFile(long)
	require.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Empty(t, tokens)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.ErrorIs(t, result.Err, bufio.ErrTooLong)
	assert.Contains(t, result.Err.Error(), "bundle.tsx")
	assert.Equal(t, []string{"p-1"}, classes(result.Tokens))
}

func TestScanCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", `<b class="p-1"></b>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Options{Paths: []string{filepath.Join(dir, "*.html")}}, nil)
	_, err := s.Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestShouldSkipFileGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "dist/\n")
	writeFile(t, dir, "dist/out.html", `<b class="p-1"></b>`)
	writeFile(t, dir, "src/in.html", `<b class="p-1"></b>`)

	t.Chdir(dir)

	s := New(Options{Paths: []string{"**/*.html"}, RespectGitignore: true}, nil)
	files, stats, err := s.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("src", "in.html")}, files)
	assert.Equal(t, 1, stats.FilesSkipped)

	s = New(Options{Paths: []string{"**/*.html"}}, nil)
	files, _, err = s.Files()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
