package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/twclass"
)

// JSONVersion is the schema version of JSONOutput.
const JSONVersion = "1.0"

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Entries   []JSONEntry `json:"entries"`
	Summary   JSONSummary `json:"summary"`
}

// JSONEntry is a parsed token with its optional location.
type JSONEntry struct {
	twclass.ParsedClassname
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// JSONSummary contains token counts
type JSONSummary struct {
	Total        int            `json:"total"`
	Recognized   int            `json:"recognized"`
	Unrecognized int            `json:"unrecognized"`
	ByType       map[string]int `json:"by_type"`
}

// WriteJSON writes entries as indented JSON
func WriteJSON(w io.Writer, entries []Entry, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(buildJSONOutput(entries, opts, time.Now()))
}

func buildJSONOutput(entries []Entry, opts Options, now time.Time) JSONOutput {
	out := JSONOutput{
		Version:   JSONVersion,
		Timestamp: now.Format(time.RFC3339),
		Entries:   []JSONEntry{},
		Summary: JSONSummary{
			Total:  len(entries),
			ByType: map[string]int{},
		},
	}

	for _, e := range entries {
		if e.Parsed.Matched() {
			out.Summary.Recognized++
			out.Summary.ByType[e.Parsed.Type]++
		} else {
			out.Summary.Unrecognized++
			if !opts.ShowUnmatched {
				continue
			}
		}
		out.Entries = append(out.Entries, JSONEntry{
			ParsedClassname: e.Parsed,
			File:            e.Token.File,
			Line:            e.Token.Line,
			Column:          e.Token.Column,
		})
	}

	return out
}
