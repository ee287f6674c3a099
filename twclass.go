// Package twclass parses utility-class tokens of CSS utility frameworks.
//
// A token such as "sm:dark:-inset-x-1" is decomposed into its variant
// prefixes, the property group it belongs to, the shorthand axis and the
// value. The decomposition is the input for lint rules that sort, group or
// deduplicate utility classes.
//
// # Parsing
//
//	groups := twclass.DefaultGroups()
//	parsed := twclass.Parse("sm:-inset-x-1", groups, twclass.DefaultConfig(), 0)
//	// parsed.Variants  == "sm"
//	// parsed.Type      == "Top / Right / Bottom / Left"
//	// parsed.Shorthand == "x"
//	// parsed.Value     == "-1"
//
// Unrecognized tokens are not errors: the returned record carries an empty
// Type, Value and Shorthand.
//
// # Catalog
//
// Groups are matched in catalog order and the first match wins, so callers
// resolve ambiguous tokens by ordering the catalog. Select narrows the default
// catalog to a few categories:
//
//	layout := twclass.Select(twclass.DefaultGroups(), "LAYOUT", "SPACING")
//
// New property families are built by composing the matcher variants
// Keyword, Numeric, Directional and Composite.
//
// # CLI Tool
//
// twclass also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/twclass/cmd/twclass@latest
package twclass
