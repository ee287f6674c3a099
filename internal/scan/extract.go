package scan

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// extractor returns the class tokens of one file's content. On error the
// tokens found before it are returned with it.
type extractor func(file string, content []byte) ([]Token, error)

func extractorFor(path string) extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".vue", ".svelte":
		return extractHTML
	case ".css", ".pcss", ".postcss":
		return extractCSS
	default:
		return extractLines
	}
}

// linePattern finds class strings on a single source line
type linePattern struct {
	name  string
	regex *regexp.Regexp
	args  bool // Group 1 is an argument list; every string literal in it is a class string
}

var (
	// Patterns for finding class strings in templ, Go and JSX sources.
	// Group 1 is the class string (or argument list) without quotes.
	linePatterns = []linePattern{
		{name: "class attribute with double quotes", regex: regexp.MustCompile(`\bclass(?:Name)?="([^"]*)"`)},
		{name: "class attribute with single quotes", regex: regexp.MustCompile(`\bclass(?:Name)?='([^']*)'`)},
		{name: "class with string literal in braces", regex: regexp.MustCompile(`\bclass(?:Name)?=\{\s*"([^"]*)"`)},
		{name: "templ.Classes arguments", regex: regexp.MustCompile(`templ\.Classes\(([^)]*)\)`), args: true},
		{name: "templ.KV with string", regex: regexp.MustCompile(`templ\.KV\(\s*"([^"]*)"`)},
	}

	stringLiteral = regexp.MustCompile(`"([^"]*)"`)

	// Comment patterns to skip
	commentPattern = regexp.MustCompile(`^\s*//`)
)

// maxLineSize bounds a single source line; longer lines (minified bundles)
// fail the file instead of truncating it.
const maxLineSize = 1024 * 1024

// extractLines scans line by line with linePatterns.
func extractLines(file string, content []byte) ([]Token, error) {
	var tokens []Token
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		tokens = append(tokens, extractFromLine(scanner.Text(), lineNum, file)...)
	}
	if err := scanner.Err(); err != nil {
		return tokens, fmt.Errorf("scan lines: line %d: %w", lineNum+1, err)
	}

	return tokens, nil
}

// extractFromLine extracts the class tokens of one line. A class string
// matched by several patterns (templ.KV inside templ.Classes) is reported once.
func extractFromLine(line string, lineNum int, file string) []Token {
	if commentPattern.MatchString(line) {
		return nil
	}

	seen := make(map[int]bool)
	var tokens []Token
	add := func(start, end int) {
		if seen[start] {
			return
		}
		seen[start] = true
		tokens = append(tokens, fieldsAt(line[start:end], file, lineNum, start+1, line)...)
	}

	for _, pattern := range linePatterns {
		for _, match := range pattern.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 || match[2] < 0 {
				continue
			}
			if !pattern.args {
				add(match[2], match[3])
				continue
			}
			args := line[match[2]:match[3]]
			for _, lit := range stringLiteral.FindAllStringSubmatchIndex(args, -1) {
				add(match[2]+lit[2], match[2]+lit[3])
			}
		}
	}

	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Column < tokens[j].Column })
	return tokens
}

// fieldsAt splits a class string into tokens. column is the 1-based column
// of classes' first byte on its line.
func fieldsAt(classes, file string, line, column int, source string) []Token {
	var tokens []Token
	source = strings.TrimSpace(source)
	index := 0
	for i := 0; i < len(classes); {
		if isSpace(classes[i]) {
			i++
			continue
		}
		start := i
		for i < len(classes) && !isSpace(classes[i]) {
			i++
		}
		tokens = append(tokens, Token{
			Class:  classes[start:i],
			Index:  index,
			File:   file,
			Line:   line,
			Column: column + start,
			Source: source,
		})
		index++
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// lineIndex converts byte offsets of a file into line and column numbers.
type lineIndex struct {
	content []byte
	starts  []int // Offset of the first byte of each line
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

// position returns the 1-based line and column of offset.
func (l *lineIndex) position(offset int) (line, column int) {
	i := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	return i + 1, offset - l.starts[i] + 1
}

// text returns the content of the 1-based line, without the newline.
func (l *lineIndex) text(line int) string {
	start := l.starts[line-1]
	end := len(l.content)
	if line < len(l.starts) {
		end = l.starts[line] - 1
	}
	return strings.TrimRight(string(l.content[start:end]), "\r")
}

// tokensAt splits a class string found at offset, which may span several
// lines, into tokens with their own positions.
func (l *lineIndex) tokensAt(classes, file string, offset int) []Token {
	var tokens []Token
	index := 0
	for i := 0; i < len(classes); {
		if isSpace(classes[i]) {
			i++
			continue
		}
		start := i
		for i < len(classes) && !isSpace(classes[i]) {
			i++
		}
		line, column := l.position(offset + start)
		tokens = append(tokens, Token{
			Class:  classes[start:i],
			Index:  index,
			File:   file,
			Line:   line,
			Column: column,
			Source: strings.TrimSpace(l.text(line)),
		})
		index++
	}
	return tokens
}
