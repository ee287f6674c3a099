package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// classAttributes are the markup attributes carrying class strings.
var classAttributes = map[string]bool{
	"class":     true,
	"classname": true,
}

// locateWindow bounds how far past the previous token the next one may
// start. The lexer only skips whitespace between tokens.
const locateWindow = 4096

// extractHTML lexes markup and extracts the tokens of class attributes.
func extractHTML(file string, content []byte) ([]Token, error) {
	lines := newLineIndex(content)
	lexer := html.NewLexer(parse.NewInputBytes(bytes.Clone(content)))

	var tokens []Token
	cursor := 0 // Offset in content past the last located token
	for {
		tt, data := lexer.Next()
		if tt == html.ErrorToken {
			// ErrorToken at EOF is normal
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return tokens, fmt.Errorf("lex html: %w", err)
			}
			return tokens, nil
		}

		start := locate(content, cursor, data)
		if start >= 0 {
			cursor = start + len(data)
		}

		if tt != html.AttributeToken || start < 0 {
			continue
		}
		if !classAttributes[strings.ToLower(string(lexer.Text()))] {
			continue
		}

		raw := lexer.AttrVal()
		value := unquote(raw)
		if strings.TrimSpace(value) == "" {
			continue
		}

		// The value follows the attribute's first "=" (names cannot hold one).
		region := content[start:min(len(content), start+len(data)+locateWindow)]
		eq := bytes.IndexByte(region, '=')
		if eq < 0 {
			continue
		}
		i := bytes.Index(region[eq:], raw)
		if i < 0 {
			continue
		}
		offset := start + eq + i
		cursor = max(cursor, offset+len(raw))
		if raw[0] == '"' || raw[0] == '\'' {
			offset++
		}

		tokens = append(tokens, lines.tokensAt(value, file, offset)...)
	}
}

// locate returns the offset of data in content at or shortly after cursor,
// or -1. The lexer lowercases tag and attribute names in place, so bytes
// compare case-insensitively.
func locate(content []byte, cursor int, data []byte) int {
	if len(data) == 0 {
		return -1
	}
	last := min(len(content)-len(data), cursor+locateWindow)
	for i := cursor; i <= last; i++ {
		if bytes.EqualFold(content[i:i+len(data)], data) {
			return i
		}
	}
	return -1
}

func unquote(raw []byte) string {
	s := string(raw)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
