package twclass

// ModeJIT selects the just-in-time tokenization: colour values may carry an
// opacity modifier ("red-600/50") and any value may be an arbitrary value
// in square brackets ("[3px]").
const ModeJIT = "jit"

// DefaultSeparator separates variants from the base token.
const DefaultSeparator = ":"

// ShorthandAll is reported when a token has no axis or direction qualifier.
const ShorthandAll = "all"

// Config holds the resolved settings the parser reads.
// It is passed by value into every call.
type Config struct {
	Mode      string // "jit" or "" (legacy)
	Separator string // Variant separator, ":" when empty
	Prefix    string // Class prefix such as "tw-", none when empty
}

// DefaultConfig returns the legacy (non-JIT) configuration.
func DefaultConfig() Config {
	return Config{Separator: DefaultSeparator}
}

// IsJIT reports whether the JIT tokenization is enabled.
func (c Config) IsJIT() bool {
	return c.Mode == ModeJIT
}

func (c Config) separator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}

// Group is one property family of the catalog
type Group struct {
	Type     string  // "Padding", "BACKGROUNDS"
	Category string  // "SPACING"; not used for matching
	Matcher  Matcher // Recognizes the family's surface forms
}

// Match runs the group's matcher against a base token (variants and
// prefix already removed).
func (g Group) Match(base string, cfg Config) Match {
	if g.Matcher == nil {
		return Match{}
	}
	return g.Matcher.match(base, cfg)
}

// ParsedClassname is the decomposition of a single token.
type ParsedClassname struct {
	Index     int    `json:"index"`     // Caller-supplied position
	Name      string `json:"name"`      // Original token
	Variants  string `json:"variants"`  // "lg:dark"
	Type      string `json:"type"`      // "Overflow", "" when unmatched
	Value     string `json:"value"`     // "auto", "-px", "red-600/50"
	Shorthand string `json:"shorthand"` // "x", "tl", "all", "color"
}

// Matched reports whether a group recognized the token.
func (p ParsedClassname) Matched() bool {
	return p.Type != ""
}
