package scan

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// isTemplGenerated checks if a file is a templ-generated Go file
// Handles both _templ.go and .templ.go suffix variations
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// loadGitIgnore loads ./.gitignore once per scanner.
// A missing .gitignore disables the check.
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	s.gitignoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			return
		}
		s.gitignore = gi
	})
	return s.gitignore
}

// shouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Pattern check (fast): skip *_templ.go files, their classes live in the .templ source
// 2. Gitignore check: only for relative paths, absolute paths are outside the project
func (s *Scanner) shouldSkipFile(path string) bool {
	if isTemplGenerated(path) {
		return true
	}

	if s.opts.RespectGitignore && !filepath.IsAbs(path) {
		gi := s.loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}
