package canvas

// CanvasElement is the read-only flattened view of one drawable, recomputed
// on demand for the action layer so it can reason about state without seeing
// rendering internals.
type CanvasElement struct {
	ID         string            `json:"id"`
	Type       ElementType       `json:"type"`
	ColorAreas map[string]string `json:"colorAreas,omitempty"`
	Position   Point             `json:"position"`
	Size       Rect              `json:"size"`
	Color      string            `json:"color,omitempty"`
	Editable   bool              `json:"editable"`
}

// Elements computes the flattened projection of the current scene. Template
// instances expose their per-region fill map; everything else carries its
// single paint color.
func (s *Scene) Elements() []CanvasElement {
	out := make([]CanvasElement, 0, len(s.objects))
	for _, o := range s.objects {
		el := CanvasElement{
			ID:       o.ID,
			Type:     o.Type,
			Position: Point{X: o.X, Y: o.Y},
			Size:     Rect{Width: o.Width, Height: o.Height},
			Color:    o.Color,
			Editable: o.Editable,
		}
		if o.Type == ElementTemplate && o.Instance != nil {
			el.ColorAreas = make(map[string]string, len(o.Instance.Regions))
			for _, rp := range o.Instance.Regions {
				el.ColorAreas[rp.RegionID] = rp.Fill
			}
		}
		out = append(out, el)
	}
	return out
}
