package twclass

import (
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Matcher recognizes the surface forms of one property family.
//
// The set of matchers is closed: Keyword, Numeric, Directional and Composite.
// Property families are described by composing them.
type Matcher interface {
	match(s string, cfg Config) Match
}

// Match is the outcome of a matcher. The zero value means "no match".
type Match struct {
	Matched   bool
	Value     string // Sign included: "-px"
	Shorthand string // "all", "x", "tl", "color"
}

func matched(value, shorthand string) Match {
	return Match{Matched: true, Value: value, Shorthand: shorthand}
}

// Keyword matches "<property>-<value>" where value is one of Values.
//
// An empty string in Values admits the bare property ("rounded", "border").
// An empty Property matches the value alone, which is how Keyword is used as
// the value rule of a Directional matcher.
type Keyword struct {
	Property string
	Values   []string
	Negative bool // Accept a leading "-" and move it into the value
	Color    bool // Accept the JIT opacity modifier ("red-600/50")
}

func (k Keyword) match(s string, cfg Config) Match {
	sign, s, ok := splitSign(s, k.Negative)
	if !ok {
		return Match{}
	}
	value, ok := cutProperty(s, k.Property)
	if !ok || !k.accepts(value, cfg) {
		return Match{}
	}
	return matched(sign+value, ShorthandAll)
}

func (k Keyword) accepts(value string, cfg Config) bool {
	if cfg.IsJIT() {
		if k.Color {
			if base, ok := cutOpacity(value); ok {
				value = base
			}
		}
		if isArbitrary(value) {
			return true
		}
	}
	return slices.Contains(k.Values, value)
}

// Numeric matches "<property>-<suffix>" where the suffix matches Pattern.
// Pattern is a regular expression anchored at both ends, "[0-9]+" when empty.
type Numeric struct {
	Property string
	Pattern  string
	Negative bool
}

// DefaultNumericPattern is used by Numeric matchers without a Pattern.
const DefaultNumericPattern = `[0-9]+`

func (n Numeric) match(s string, cfg Config) Match {
	sign, s, ok := splitSign(s, n.Negative)
	if !ok {
		return Match{}
	}
	value, ok := cutProperty(s, n.Property)
	if !ok || value == "" {
		return Match{}
	}
	if cfg.IsJIT() && isArbitrary(value) {
		return matched(sign+value, ShorthandAll)
	}
	pattern := n.Pattern
	if pattern == "" {
		pattern = DefaultNumericPattern
	}
	re := compilePattern(pattern)
	if re == nil || !re.MatchString(value) {
		return Match{}
	}
	return matched(sign+value, ShorthandAll)
}

// Direction maps a surface prefix to the shorthand it stands for.
type Direction struct {
	Prefix    string // "px", "overflow-x", "rounded-tl", "top"
	Shorthand string // "x", "x", "tl", "t"
}

// Directional matches "<prefix>-<value>" for each prefix of its direction
// table. The remainder after the prefix must satisfy Value; a bare prefix is
// passed to Value as the empty string. Directions are tried in order and the
// first accepted one reports its shorthand.
type Directional struct {
	Directions []Direction
	Value      Matcher
	Negative   bool
}

func (d Directional) match(s string, cfg Config) Match {
	if d.Value == nil {
		return Match{}
	}
	sign, s, ok := splitSign(s, d.Negative)
	if !ok {
		return Match{}
	}
	for _, dir := range d.Directions {
		rest, ok := cutProperty(s, dir.Prefix)
		if !ok {
			continue
		}
		if m := d.Value.match(rest, cfg); m.Matched {
			return matched(sign+m.Value, dir.Shorthand)
		}
	}
	return Match{}
}

// Kind is one sub-property of an aggregate group.
type Kind struct {
	Shorthand string // Reported on match; the inner shorthand is kept when empty
	Matcher   Matcher
}

// Composite aggregates several related sub-properties under one group type,
// e.g. background colour and background opacity.
type Composite struct {
	Kinds []Kind
}

func (c Composite) match(s string, cfg Config) Match {
	for _, kind := range c.Kinds {
		if kind.Matcher == nil {
			continue
		}
		m := kind.Matcher.match(s, cfg)
		if !m.Matched {
			continue
		}
		if kind.Shorthand != "" {
			m.Shorthand = kind.Shorthand
		}
		return m
	}
	return Match{}
}

// splitSign removes a leading "-" when negative forms are allowed.
// ok is false for a signed token that the matcher does not accept.
func splitSign(s string, negative bool) (sign, rest string, ok bool) {
	if !strings.HasPrefix(s, "-") {
		return "", s, true
	}
	if !negative {
		return "", s, false
	}
	return "-", s[1:], true
}

// cutProperty strips "<property>-" from s. A bare property yields an empty
// value; "<property>-" alone is rejected.
func cutProperty(s, property string) (string, bool) {
	if property == "" {
		return s, true
	}
	if s == property {
		return "", true
	}
	rest, ok := strings.CutPrefix(s, property+"-")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// cutOpacity splits a JIT opacity modifier off a colour value.
func cutOpacity(value string) (string, bool) {
	i := strings.LastIndexByte(value, '/')
	if i <= 0 {
		return value, false
	}
	base, modifier := value[:i], value[i+1:]
	if !isDigits(modifier) && !isArbitrary(modifier) {
		return value, false
	}
	return base, true
}

// isArbitrary reports whether value is a JIT arbitrary value: "[...]" with
// balanced brackets, no whitespace and a non-empty body.
func isArbitrary(value string) bool {
	if len(value) < 3 || value[0] != '[' || value[len(value)-1] != ']' {
		return false
	}
	depth := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 && i != len(value)-1 {
				return false
			}
		case ' ', '\t', '\n', '\r':
			return false
		}
	}
	return depth == 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// patternCache holds compiled Numeric patterns; a nil entry marks an
// invalid pattern, which never matches.
var patternCache sync.Map // string -> *regexp.Regexp

func compilePattern(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		re = nil
	}
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}
