package template

// TemplateRegion is one independently fillable sub-path of a garment template.
// Definitions are immutable; placed instances copy the default color into a
// live region path they own.
type TemplateRegion struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PathData     string `json:"pathData"`
	DefaultColor string `json:"defaultColor"`
}

// SvgTemplate is a garment silhouette defined as an ordered set of regions in
// a local coordinate space of Width x Height.
type SvgTemplate struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Regions []TemplateRegion `json:"regions"`
}

// Region returns the region with the given id, if present.
func (t *SvgTemplate) Region(regionID string) (TemplateRegion, bool) {
	for _, r := range t.Regions {
		if r.ID == regionID {
			return r, true
		}
	}
	return TemplateRegion{}, false
}

// RegionIDs returns the region ids in definition order.
func (t *SvgTemplate) RegionIDs() []string {
	ids := make([]string, len(t.Regions))
	for i, r := range t.Regions {
		ids[i] = r.ID
	}
	return ids
}
