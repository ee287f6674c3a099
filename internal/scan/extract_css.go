package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// extractCSS lexes a stylesheet and extracts the arguments of @apply rules.
//
// The CSS lexer splits "md:p-4" into ident, colon and ident tokens, so the
// tokens of a class are concatenated until whitespace, a comment or the end
// of the rule.
func extractCSS(file string, content []byte) ([]Token, error) {
	lines := newLineIndex(content)
	lexer := css.NewLexer(parse.NewInputBytes(bytes.Clone(content)))

	var tokens []Token
	var word strings.Builder
	wordStart := 0
	offset := 0
	applying := false
	index := 0

	flush := func() {
		if word.Len() == 0 {
			return
		}
		class := word.String()
		word.Reset()
		if class == "!important" {
			return
		}
		line, column := lines.position(wordStart)
		tokens = append(tokens, Token{
			Class:  class,
			Index:  index,
			File:   file,
			Line:   line,
			Column: column,
			Source: strings.TrimSpace(lines.text(line)),
		})
		index++
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			flush()
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return tokens, fmt.Errorf("lex css: %w", err)
			}
			return tokens, nil
		}
		start := offset
		offset += len(data)

		if tt == css.AtKeywordToken {
			flush()
			applying = strings.EqualFold(string(data), "@apply")
			index = 0
			continue
		}
		if !applying {
			continue
		}

		switch tt {
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
			flush()
			applying = false
		case css.WhitespaceToken, css.CommentToken:
			flush()
		default:
			if word.Len() == 0 {
				wordStart = start
			}
			word.Write(data)
		}
	}
}
