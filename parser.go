package twclass

import "strings"

// Parse decomposes a single utility-class token.
//
// Everything before the last separator is returned as Variants, verbatim.
// The remaining base token is matched against groups in order and the first
// matching group sets Type, Value and Shorthand. When no group matches those
// fields stay empty; Index and Name always echo the inputs.
//
// Parse is pure and safe for concurrent use.
func Parse(token string, groups []Group, cfg Config, index int) ParsedClassname {
	variants, base := SplitVariants(token, cfg.separator())
	parsed := ParsedClassname{
		Index:    index,
		Name:     token,
		Variants: variants,
	}

	base, ok := stripPrefix(base, cfg.Prefix)
	if !ok {
		return parsed
	}

	for _, group := range groups {
		if m := group.Match(base, cfg); m.Matched {
			parsed.Type = group.Type
			parsed.Value = m.Value
			parsed.Shorthand = m.Shorthand
			break
		}
	}

	return parsed
}

// ParseAll parses every whitespace-separated token of a class attribute
// value. Each token's Index is its position within the attribute.
func ParseAll(classes string, groups []Group, cfg Config) []ParsedClassname {
	tokens := strings.Fields(classes)
	result := make([]ParsedClassname, 0, len(tokens))
	for i, token := range tokens {
		result = append(result, Parse(token, groups, cfg, i))
	}
	return result
}

// SplitVariants splits a token at its last top-level separator.
// Separators inside square brackets belong to arbitrary values and do not
// split: "md:bg-[url(a:b)]" yields ("md", "bg-[url(a:b)]"). Unbalanced
// brackets fall back to the last separator anywhere in the token.
func SplitVariants(token, separator string) (variants, base string) {
	if separator == "" {
		separator = DefaultSeparator
	}

	last := -1
	depth := 0
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '[':
			depth++
			continue
		case ']':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && strings.HasPrefix(token[i:], separator) {
			last = i
			i += len(separator) - 1
		}
	}

	if depth != 0 {
		last = strings.LastIndex(token, separator)
	}
	if last < 0 {
		return "", token
	}
	return token[:last], token[last+len(separator):]
}

// stripPrefix removes the configured class prefix, keeping a leading sign:
// "-tw-my-px" becomes "-my-px". A base without the prefix is rejected.
func stripPrefix(base, prefix string) (string, bool) {
	if prefix == "" {
		return base, true
	}
	sign := ""
	if strings.HasPrefix(base, "-") {
		sign, base = "-", base[1:]
	}
	rest, ok := strings.CutPrefix(base, prefix)
	if !ok || rest == "" {
		return "", false
	}
	return sign + rest, true
}
