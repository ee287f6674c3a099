package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// TypeCount is the number of tokens recognized by one group type.
type TypeCount struct {
	Type  string
	Count int
}

// CountByType tallies recognized entries per group type, most frequent
// first and ties broken by name.
func CountByType(entries []Entry) []TypeCount {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Parsed.Matched() {
			counts[e.Parsed.Type]++
		}
	}

	result := make([]TypeCount, 0, len(counts))
	for typ, n := range counts {
		result = append(result, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})
	return result
}

// WriteSummary writes the per-type statistics table.
func WriteSummary(w io.Writer, entries []Entry, opts Options) error {
	var b strings.Builder
	counts := CountByType(entries)
	recognized := countRecognized(entries)

	b.WriteString(RenderStyle(StyleCyan, "Classname Statistics", opts.UseColors))
	b.WriteString("\n--------------------\n")
	fmt.Fprintf(&b, "Total Tokens:   %d\n", len(entries))
	fmt.Fprintf(&b, "Recognized:     %d (%.1f%%)\n", recognized, percentage(recognized, len(entries)))
	fmt.Fprintf(&b, "Unrecognized:   %d\n", len(entries)-recognized)

	if len(counts) > 0 {
		width := 0
		for _, c := range counts {
			width = max(width, len(c.Type))
		}

		b.WriteString("\n")
		b.WriteString(RenderStyle(StyleCyan, "By Type", opts.UseColors))
		b.WriteString("\n-------\n")
		for _, c := range counts {
			fmt.Fprintf(&b, "%-*s  %d\n", width, c.Type, c.Count)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
