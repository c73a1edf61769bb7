package color

// PaletteCategory classifies a color swatch set.
type PaletteCategory string

const (
	CategoryPantone  PaletteCategory = "pantone"
	CategorySeasonal PaletteCategory = "seasonal"
	CategoryTrending PaletteCategory = "trending"
	CategoryCustom   PaletteCategory = "custom"
)

// Palette is a static named set of swatches.
type Palette struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category PaletteCategory `json:"category"`
	Season   string          `json:"season,omitempty"`
	Year     int             `json:"year,omitempty"`
	Colors   []string        `json:"colors"`
}

var palettes = []Palette{
	{
		ID: "pantone-classics", Name: "Pantone Classics", Category: CategoryPantone,
		Colors: []string{"#FF6F61", "#0F4C81", "#BB2649", "#6667AB", "#5F4B8B", "#88B04B"},
	},
	{
		ID: "ss26-resort", Name: "Resort", Category: CategorySeasonal, Season: "spring-summer", Year: 2026,
		Colors: []string{"#FFBE98", "#91A8D0", "#F4F5F0", "#98FF98", "#FF7F50", "#E6E6FA"},
	},
	{
		ID: "aw26-heritage", Name: "Heritage", Category: CategorySeasonal, Season: "autumn-winter", Year: 2026,
		Colors: []string{"#800020", "#36454F", "#C3B091", "#808000", "#955251", "#2D2926"},
	},
	{
		ID: "trending-now", Name: "Trending", Category: CategoryTrending,
		Colors: []string{"#BB2649", "#FFBE98", "#0F4C81", "#DE5D83", "#FFD700", "#40E0D0"},
	},
}

// Palettes returns the palette catalog.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}
