// Package scan finds utility-class tokens in source files.
package scan

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of files scanned at once.
const DefaultConcurrency = 8

// Options configures a Scanner.
type Options struct {
	Paths            []string // Doublestar globs: "web/**/*.html"
	Concurrency      int      // Files scanned in parallel (default: 8)
	RespectGitignore bool     // Skip relative paths matched by ./.gitignore
}

// Token is one class token found in a file.
type Token struct {
	Class  string // "md:p-4"
	Index  int    // Position within its class attribute
	File   string
	Line   int
	Column int    // 1-based column of the token's first byte
	Source string // Trimmed source line for display
}

// Stats tracks file discovery statistics
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Generated or gitignored files
}

// Result holds every token of a scan.
type Result struct {
	Tokens []Token
	Stats  Stats
	Err    error // Per-file failures, combined with multierr; nil when all files were read
}

// Scanner discovers files and extracts class tokens from them.
type Scanner struct {
	opts Options
	log  *zap.Logger

	gitignoreOnce sync.Once
	gitignore     *ignore.GitIgnore
}

// New creates a Scanner. A nil logger discards all output.
func New(opts Options, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{opts: opts, log: log.Named("scan")}
}

func (s *Scanner) concurrency() int {
	if s.opts.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return s.opts.Concurrency
}

// Scan extracts tokens from every matching file. Files that cannot be read
// or fully extracted are logged and recorded in Result.Err; they do not stop
// the scan, and their partial tokens are kept.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	files, stats, err := s.Files()
	if err != nil {
		return nil, err
	}
	s.log.Debug("discovered files",
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	result := &Result{Stats: stats}
	perFile := make([][]Token, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokens, err := s.ScanFile(file)
			perFile[i] = tokens
			if err != nil {
				s.log.Warn("incomplete file", zap.String("file", file), zap.Error(err))
				mu.Lock()
				result.Err = multierr.Append(result.Err, fmt.Errorf("%s: %w", file, err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan canceled: %w", err)
	}

	for _, tokens := range perFile {
		result.Tokens = append(result.Tokens, tokens...)
	}
	sortTokens(result.Tokens)

	return result, nil
}

// Files expands the configured globs, removing duplicates, directories and
// skipped files.
func (s *Scanner) Files() ([]string, Stats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range s.opts.Paths {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// ScanFile extracts the tokens of a single file, choosing the extractor by
// file extension. When the content cannot be fully read, the tokens found
// before the failure are returned along with the error.
func (s *Scanner) ScanFile(path string) ([]Token, error) {
	// #nosec G304 - path comes from configured globs
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	tokens, err := extractorFor(path)(path, content)
	s.log.Debug("scanned file", zap.String("file", path), zap.Int("tokens", len(tokens)))
	return tokens, err
}

func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].File != tokens[j].File {
			return tokens[i].File < tokens[j].File
		}
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].Column < tokens[j].Column
	})
}
