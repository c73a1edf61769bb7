package template

// Built-in garment catalog. Path data is authored in each template's local
// coordinate space and never mutated; placed instances reference it by id.
var catalog = []SvgTemplate{
	{
		ID:     "a-line-dress",
		Name:   "A-Line Dress",
		Width:  200,
		Height: 300,
		Regions: []TemplateRegion{
			{ID: "bodice", Name: "Bodice", DefaultColor: "#E8D5C4",
				PathData: "M 70 60 L 130 60 L 140 140 L 60 140 Z"},
			{ID: "skirt", Name: "Skirt", DefaultColor: "#D9B8A0",
				PathData: "M 60 140 L 140 140 L 170 280 L 30 280 Z"},
			{ID: "left-sleeve", Name: "Left Sleeve", DefaultColor: "#E8D5C4",
				PathData: "M 70 60 L 50 65 L 40 110 L 60 105 Z"},
			{ID: "right-sleeve", Name: "Right Sleeve", DefaultColor: "#E8D5C4",
				PathData: "M 130 60 L 150 65 L 160 110 L 140 105 Z"},
			{ID: "neckline", Name: "Neckline", DefaultColor: "#C9A98C",
				PathData: "M 85 60 Q 100 75 115 60 L 110 55 Q 100 65 90 55 Z"},
		},
	},
	{
		ID:     "tshirt-basic",
		Name:   "Basic T-Shirt",
		Width:  220,
		Height: 240,
		Regions: []TemplateRegion{
			{ID: "body", Name: "Body", DefaultColor: "#F5F5F5",
				PathData: "M 70 60 L 150 60 L 150 220 L 70 220 Z"},
			{ID: "left-sleeve", Name: "Left Sleeve", DefaultColor: "#F5F5F5",
				PathData: "M 70 60 L 40 70 L 50 115 L 70 105 Z"},
			{ID: "right-sleeve", Name: "Right Sleeve", DefaultColor: "#F5F5F5",
				PathData: "M 150 60 L 180 70 L 170 115 L 150 105 Z"},
			{ID: "neckline", Name: "Neckline", DefaultColor: "#E0E0E0",
				PathData: "M 95 60 Q 110 78 125 60 L 120 54 Q 110 68 100 54 Z"},
		},
	},
	{
		ID:     "pencil-skirt",
		Name:   "Pencil Skirt",
		Width:  160,
		Height: 220,
		Regions: []TemplateRegion{
			{ID: "waistband", Name: "Waistband", DefaultColor: "#4A4A4A",
				PathData: "M 40 20 L 120 20 L 120 40 L 40 40 Z"},
			{ID: "body", Name: "Body", DefaultColor: "#6B6B6B",
				PathData: "M 40 40 L 120 40 L 110 200 L 50 200 Z"},
			{ID: "back-slit", Name: "Back Slit", DefaultColor: "#3A3A3A",
				PathData: "M 76 160 L 84 160 L 84 200 L 76 200 Z"},
		},
	},
	{
		ID:     "bomber-jacket",
		Name:   "Bomber Jacket",
		Width:  240,
		Height: 260,
		Regions: []TemplateRegion{
			{ID: "torso", Name: "Torso", DefaultColor: "#2F4F4F",
				PathData: "M 80 60 L 160 60 L 160 220 L 80 220 Z"},
			{ID: "left-sleeve", Name: "Left Sleeve", DefaultColor: "#2F4F4F",
				PathData: "M 80 60 L 45 75 L 55 200 L 80 190 Z"},
			{ID: "right-sleeve", Name: "Right Sleeve", DefaultColor: "#2F4F4F",
				PathData: "M 160 60 L 195 75 L 185 200 L 160 190 Z"},
			{ID: "collar", Name: "Collar", DefaultColor: "#1C3333",
				PathData: "M 100 60 L 140 60 L 135 48 L 105 48 Z"},
			{ID: "cuffs", Name: "Cuffs", DefaultColor: "#1C3333",
				PathData: "M 52 200 L 58 200 L 57 212 L 51 212 Z M 182 200 L 188 200 L 189 212 L 183 212 Z"},
			{ID: "hem", Name: "Hem", DefaultColor: "#1C3333",
				PathData: "M 80 220 L 160 220 L 160 232 L 80 232 Z"},
		},
	},
	{
		ID:     "wide-leg-trousers",
		Name:   "Wide-Leg Trousers",
		Width:  180,
		Height: 300,
		Regions: []TemplateRegion{
			{ID: "waistband", Name: "Waistband", DefaultColor: "#3B3B58",
				PathData: "M 45 20 L 135 20 L 135 42 L 45 42 Z"},
			{ID: "left-leg", Name: "Left Leg", DefaultColor: "#50507A",
				PathData: "M 45 42 L 88 42 L 88 280 L 35 280 Z"},
			{ID: "right-leg", Name: "Right Leg", DefaultColor: "#50507A",
				PathData: "M 92 42 L 135 42 L 145 280 L 92 280 Z"},
		},
	},
	{
		ID:     "tote-bag",
		Name:   "Tote Bag",
		Width:  180,
		Height: 200,
		Regions: []TemplateRegion{
			{ID: "body", Name: "Body", DefaultColor: "#C8B896",
				PathData: "M 30 70 L 150 70 L 150 190 L 30 190 Z"},
			{ID: "handles", Name: "Handles", DefaultColor: "#8A7550",
				PathData: "M 55 70 Q 90 10 125 70 L 115 70 Q 90 26 65 70 Z"},
			{ID: "pocket", Name: "Front Pocket", DefaultColor: "#B0A080",
				PathData: "M 60 100 L 120 100 L 120 150 L 60 150 Z"},
		},
	},
}

// Lookup returns the template definition for id.
func Lookup(id string) (*SvgTemplate, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], true
		}
	}
	return nil, false
}

// List returns the full catalog in definition order.
func List() []SvgTemplate {
	out := make([]SvgTemplate, len(catalog))
	copy(out, catalog)
	return out
}
