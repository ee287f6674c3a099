// Package report renders parsed class tokens for the terminal or for tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/twclass"
	"github.com/yacobolo/twclass/internal/scan"
)

// Format selects how entries are written.
type Format string

const (
	FormatText    Format = "text"    // One line per token
	FormatJSON    Format = "json"    // Machine-readable export
	FormatSummary Format = "summary" // Token counts per group type
)

// ParseFormat maps a flag value to a Format. Unknown values fall back to text.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatSummary:
		return FormatSummary
	default:
		return FormatText
	}
}

// Entry is one parsed token with the place it was found. Token is the zero
// value for tokens given on the command line.
type Entry struct {
	Token  scan.Token
	Parsed twclass.ParsedClassname
}

// Options controls rendering.
type Options struct {
	UseColors     bool
	ShowUnmatched bool // Include unrecognized tokens in text and JSON output
	PrintLines    bool // Print the source line and a caret under each text entry
}

// Write renders entries in the given format.
func Write(w io.Writer, entries []Entry, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, entries, opts)
	case FormatSummary:
		return WriteSummary(w, entries, opts)
	default:
		return WriteText(w, entries, opts)
	}
}

// WriteText writes one line per entry followed by a count footer.
func WriteText(w io.Writer, entries []Entry, opts Options) error {
	var b strings.Builder
	shown := 0
	for _, e := range entries {
		if !e.Parsed.Matched() && !opts.ShowUnmatched {
			continue
		}
		writeEntry(&b, e, opts)
		shown++
	}

	recognized := countRecognized(entries)
	if shown > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s (%d recognized, %d unrecognized)\n",
		pluralizeCount(len(entries), "token", "tokens"),
		recognized, len(entries)-recognized)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeEntry formats a single entry:
// file:line:col: name → type [shorthand] value (variants)
func writeEntry(b *strings.Builder, e Entry, opts Options) {
	p := e.Parsed
	if e.Token.File != "" {
		location := fmt.Sprintf("%s:%d:%d:", e.Token.File, e.Token.Line, e.Token.Column)
		b.WriteString(RenderStyle(StyleCyan, location, opts.UseColors))
		b.WriteString(" ")
	}
	b.WriteString(p.Name)
	b.WriteString(" → ")

	if !p.Matched() {
		b.WriteString(RenderStyle(StyleRed, "unrecognized", opts.UseColors))
	} else {
		b.WriteString(RenderStyle(StyleGreen, p.Type, opts.UseColors))
		if p.Shorthand != "" {
			fmt.Fprintf(b, " [%s]", p.Shorthand)
		}
		if p.Value != "" {
			b.WriteString(" ")
			b.WriteString(p.Value)
		}
	}
	if p.Variants != "" {
		b.WriteString(" ")
		b.WriteString(RenderStyle(StyleGray, "("+p.Variants+")", opts.UseColors))
	}
	b.WriteString("\n")

	if opts.PrintLines && e.Token.Source != "" {
		fmt.Fprintf(b, "\t%s\n", e.Token.Source)
		caret := buildCaretIndicator(e.Token.Source, sourceColumn(e.Token))
		fmt.Fprintf(b, "\t%s\n", RenderStyle(StyleYellow, caret, opts.UseColors))
	}
}

// sourceColumn converts the token's column on the raw line to its column on
// the trimmed Source line. Trimming only shifts left, so the token is the
// last occurrence at or before its raw column.
func sourceColumn(t scan.Token) int {
	if t.Column <= 0 || t.Class == "" {
		return 0
	}
	found := -1
	for i := 0; i < t.Column && i < len(t.Source); {
		j := strings.Index(t.Source[i:], t.Class)
		if j < 0 || i+j >= t.Column {
			break
		}
		found = i + j
		i = found + 1
	}
	return found + 1
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in the terminal.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	prefixLen := min(column-1, len(sourceLine))
	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

func countRecognized(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Parsed.Matched() {
			n++
		}
	}
	return n
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
