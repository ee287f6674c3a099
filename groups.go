package twclass

import "slices"

// Catalog categories, in default catalog order.
const (
	CategoryLayout      = "LAYOUT"
	CategoryFlexbox     = "FLEXBOX"
	CategoryGrid        = "GRID"
	CategorySpacing     = "SPACING"
	CategorySizing      = "SIZING"
	CategoryTypography  = "TYPOGRAPHY"
	CategoryBackgrounds = "BACKGROUNDS"
	CategoryBorders     = "BORDERS"
	CategoryEffects     = "EFFECTS"
	CategoryTransforms  = "TRANSFORMS"
)

// Shorthands of aggregate groups
const (
	ShorthandColor   = "color"
	ShorthandOpacity = "opacity"
)

// axes builds the direction table of a property with glued axis codes
// ("p", "px", "pt") or hyphenated ones ("overflow", "overflow-x"), sep being
// "" or "-" respectively.
func axes(property, sep string, codes ...string) []Direction {
	dirs := []Direction{{Prefix: property, Shorthand: ShorthandAll}}
	for _, code := range codes {
		dirs = append(dirs, Direction{Prefix: property + sep + code, Shorthand: code})
	}
	return dirs
}

var (
	xy    = []string{"x", "y"}
	sides = []string{"x", "y", "t", "r", "b", "l"}
)

// DefaultGroups returns the built-in catalog. The slice is fresh on every
// call; the matchers and their vocabularies are shared and read-only.
func DefaultGroups() []Group {
	return []Group{
		// Layout
		{
			Type:     "Overflow",
			Category: CategoryLayout,
			Matcher: Directional{
				Directions: axes("overflow", "-", xy...),
				Value:      Keyword{Values: overflowValues},
			},
		},
		{
			Type:     "Overscroll Behavior",
			Category: CategoryLayout,
			Matcher: Directional{
				Directions: axes("overscroll", "-", xy...),
				Value:      Keyword{Values: overscrollValues},
			},
		},
		{
			Type:     "Top / Right / Bottom / Left",
			Category: CategoryLayout,
			Matcher: Directional{
				Directions: append(axes("inset", "-", xy...),
					Direction{Prefix: "top", Shorthand: "t"},
					Direction{Prefix: "right", Shorthand: "r"},
					Direction{Prefix: "bottom", Shorthand: "b"},
					Direction{Prefix: "left", Shorthand: "l"},
				),
				Value:    Keyword{Values: insetValues},
				Negative: true,
			},
		},
		{
			Type:     "Z-Index",
			Category: CategoryLayout,
			Matcher:  Keyword{Property: "z", Values: zIndexValues},
		},

		// Flexbox
		{
			Type:     "Flex Grow",
			Category: CategoryFlexbox,
			Matcher:  Keyword{Property: "flex-grow", Values: flexGrowValues},
		},

		// Grid
		{
			Type:     "Gap",
			Category: CategoryGrid,
			Matcher: Directional{
				Directions: axes("gap", "-", xy...),
				Value:      Keyword{Values: spacingScale},
			},
		},

		// Spacing
		{
			Type:     "Padding",
			Category: CategorySpacing,
			Matcher: Directional{
				Directions: axes("p", "", sides...),
				Value:      Keyword{Values: spacingScale},
			},
		},
		{
			Type:     "Margin",
			Category: CategorySpacing,
			Matcher: Directional{
				Directions: axes("m", "", sides...),
				Value:      Keyword{Values: marginValues},
				Negative:   true,
			},
		},

		// Sizing
		{
			Type:     "Width",
			Category: CategorySizing,
			Matcher:  Keyword{Property: "w", Values: widthValues},
		},
		{
			Type:     "Height",
			Category: CategorySizing,
			Matcher:  Keyword{Property: "h", Values: heightValues},
		},

		// Typography: sizes before colours, both use "text-"
		{
			Type:     "Font Size",
			Category: CategoryTypography,
			Matcher:  Keyword{Property: "text", Values: fontSizeValues},
		},
		{
			Type:     "Font Weight",
			Category: CategoryTypography,
			Matcher:  Keyword{Property: "font", Values: fontWeightValues},
		},
		{
			Type:     "Text Color",
			Category: CategoryTypography,
			Matcher:  Keyword{Property: "text", Values: colors, Color: true},
		},

		// Backgrounds
		{
			Type:     "BACKGROUNDS",
			Category: CategoryBackgrounds,
			Matcher: Composite{Kinds: []Kind{
				{Shorthand: ShorthandColor, Matcher: Keyword{Property: "bg", Values: colors, Color: true}},
				{Shorthand: ShorthandOpacity, Matcher: Numeric{Property: "bg-opacity"}},
			}},
		},
		{
			Type:     "Gradient Color Stops",
			Category: CategoryBackgrounds,
			Matcher: Directional{
				Directions: []Direction{
					{Prefix: "from", Shorthand: ShorthandColor},
					{Prefix: "via", Shorthand: ShorthandColor},
					{Prefix: "to", Shorthand: ShorthandColor},
				},
				Value: Keyword{Values: colors, Color: true},
			},
		},

		// Borders
		{
			Type:     "Border Radius",
			Category: CategoryBorders,
			Matcher: Directional{
				Directions: axes("rounded", "-", "t", "r", "b", "l", "tl", "tr", "br", "bl"),
				Value:      Keyword{Values: borderRadiusValues},
			},
		},
		{
			Type:     "Border Width",
			Category: CategoryBorders,
			Matcher: Directional{
				Directions: axes("border", "-", sides...),
				Value:      Keyword{Values: borderWidthValues},
			},
		},
		{
			Type:     "Border Color",
			Category: CategoryBorders,
			Matcher: Directional{
				Directions: axes("border", "-", sides...),
				Value:      Keyword{Values: colors, Color: true},
			},
		},

		// Effects
		{
			Type:     "Opacity",
			Category: CategoryEffects,
			Matcher:  Numeric{Property: "opacity"},
		},

		// Transforms
		{
			Type:     "Scale",
			Category: CategoryTransforms,
			Matcher: Directional{
				Directions: axes("scale", "-", xy...),
				Value:      Numeric{},
			},
		},
		{
			Type:     "Rotate",
			Category: CategoryTransforms,
			Matcher:  Numeric{Property: "rotate", Negative: true},
		},
	}
}

// Select keeps the groups whose category is listed, preserving catalog
// order. No categories means no filtering.
func Select(groups []Group, categories ...string) []Group {
	if len(categories) == 0 {
		return slices.Clone(groups)
	}
	result := make([]Group, 0, len(groups))
	for _, g := range groups {
		if slices.Contains(categories, g.Category) {
			result = append(result, g)
		}
	}
	return result
}

// Categories lists the categories of groups in first-seen order.
func Categories(groups []Group) []string {
	var result []string
	for _, g := range groups {
		if !slices.Contains(result, g.Category) {
			result = append(result, g.Category)
		}
	}
	return result
}
