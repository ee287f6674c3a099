package twclass

import "slices"

// Default theme vocabulary (Tailwind CSS v2). Only used to build the
// default catalog; values are matched syntactically, never validated.
var (
	spacingScale = []string{
		"0", "px", "0.5", "1", "1.5", "2", "2.5", "3", "3.5", "4", "5", "6", "7", "8", "9",
		"10", "11", "12", "14", "16", "20", "24", "28", "32", "36", "40", "44", "48", "52",
		"56", "60", "64", "72", "80", "96",
	}

	fractions = []string{"1/2", "1/3", "2/3", "1/4", "2/4", "3/4"}

	widthFractions = []string{
		"1/5", "2/5", "3/5", "4/5",
		"1/6", "2/6", "3/6", "4/6", "5/6",
		"1/12", "2/12", "3/12", "4/12", "5/12", "6/12", "7/12", "8/12", "9/12", "10/12", "11/12",
	}

	paletteNames  = []string{"gray", "red", "yellow", "green", "blue", "indigo", "purple", "pink"}
	paletteShades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

	colors = buildColors()

	overflowValues   = []string{"auto", "hidden", "visible", "scroll"}
	overscrollValues = []string{"auto", "contain", "none"}

	insetValues  = concat(spacingScale, []string{"auto", "full"}, fractions)
	marginValues = concat(spacingScale, []string{"auto"})
	widthValues  = concat(spacingScale, []string{"auto", "full", "screen", "min", "max"}, fractions, widthFractions)
	heightValues = concat(spacingScale, []string{"auto", "full", "screen"}, fractions, []string{"1/5", "2/5", "3/5", "4/5", "1/6", "2/6", "3/6", "4/6", "5/6"})

	borderRadiusValues = []string{"", "none", "sm", "md", "lg", "xl", "2xl", "3xl", "full"}
	borderWidthValues  = []string{"", "0", "2", "4", "8"}

	fontSizeValues   = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl"}
	fontWeightValues = []string{"thin", "extralight", "light", "normal", "medium", "semibold", "bold", "extrabold", "black"}

	zIndexValues   = []string{"0", "10", "20", "30", "40", "50", "auto"}
	flexGrowValues = []string{"", "0"}
)

// buildColors expands the palette into "<name>-<shade>" keywords.
func buildColors() []string {
	result := []string{"transparent", "current", "black", "white"}
	for _, name := range paletteNames {
		for _, shade := range paletteShades {
			result = append(result, name+"-"+shade)
		}
	}
	return result
}

func concat(lists ...[]string) []string {
	return slices.Concat(lists...)
}
