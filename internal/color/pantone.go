package color

import (
	"regexp"
	"strings"
)

// pantoneToHex maps industry color codes to their hex values. The planner may
// emit any of code, literal hex, or plain English name depending on how the
// user phrased the request, so Resolve tries all three in a fixed order.
var pantoneToHex = map[string]string{
	"11-0601": "#F4F5F0", // Bright White
	"13-1023": "#FFBE98", // Peach Fuzz
	"14-4122": "#91A8D0", // Airy Blue
	"15-0343": "#88B04B", // Greenery
	"16-1546": "#FF6F61", // Living Coral
	"17-1463": "#DD4124", // Tangerine Tango
	"17-3938": "#6667AB", // Very Peri
	"18-1438": "#955251", // Marsala
	"18-1750": "#BB2649", // Viva Magenta
	"18-3838": "#5F4B8B", // Ultra Violet
	"19-1664": "#9B1B30", // True Red
	"19-4052": "#0F4C81", // Classic Blue
	"19-4305": "#2D2926", // Pirate Black
}

var nameToHex = map[string]string{
	"black":     "#000000",
	"white":     "#FFFFFF",
	"red":       "#FF0000",
	"green":     "#008000",
	"blue":      "#0000FF",
	"yellow":    "#FFFF00",
	"orange":    "#FFA500",
	"purple":    "#800080",
	"pink":      "#FFC0CB",
	"brown":     "#A52A2A",
	"gray":      "#808080",
	"grey":      "#808080",
	"navy":      "#000080",
	"teal":      "#008080",
	"cream":     "#FFFDD0",
	"beige":     "#F5F5DC",
	"ivory":     "#FFFFF0",
	"burgundy":  "#800020",
	"coral":     "#FF7F50",
	"lavender":  "#E6E6FA",
	"mint":      "#98FF98",
	"mustard":   "#FFDB58",
	"olive":     "#808000",
	"charcoal":  "#36454F",
	"turquoise": "#40E0D0",
	"gold":      "#FFD700",
	"silver":    "#C0C0C0",
	"khaki":     "#C3B091",
	"maroon":    "#800000",
	"blush":     "#DE5D83",
}

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultColor is what Resolve falls back to when nothing matches.
const DefaultColor = "#000000"

// Pantone resolves a code like "19-4052" to its hex value.
func Pantone(code string) (string, bool) {
	hex, ok := pantoneToHex[strings.TrimSpace(code)]
	return hex, ok
}

// IsHex reports whether s is a 6-digit hex color literal.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Resolve picks a concrete hex color from a pantone code and/or a free-form
// color string. Precedence: pantone code, then hex literal, then color name.
func Resolve(pantoneCode, color string) string {
	if hex, ok := Pantone(pantoneCode); ok {
		return hex
	}
	color = strings.TrimSpace(color)
	if IsHex(color) {
		return strings.ToUpper(color)
	}
	if hex, ok := nameToHex[strings.ToLower(color)]; ok {
		return hex
	}
	return DefaultColor
}
