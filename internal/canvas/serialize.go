package canvas

import (
	"encoding/json"
	"fmt"
)

// sceneDocument is the opaque JSON form of the whole scene. The storage layer
// treats it as a blob; only this package knows its shape.
type sceneDocument struct {
	Version    int           `json:"version"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Background string        `json:"background"`
	Objects    []objectEntry `json:"objects"`
}

type objectEntry struct {
	ID          string        `json:"id"`
	Type        ElementType   `json:"type"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Color       string        `json:"color,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	Points      []Point       `json:"points,omitempty"`
	Shape       ShapeKind     `json:"shape,omitempty"`
	Text        string        `json:"text,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Editable    bool          `json:"editable"`
	TemplateID  string        `json:"templateId,omitempty"`
	Regions     []regionEntry `json:"regions,omitempty"`
}

type regionEntry struct {
	RegionID    string  `json:"regionId"`
	Name        string  `json:"name"`
	PathData    string  `json:"pathData"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

const documentVersion = 1

// Serialize renders the full scene to its opaque JSON document.
func (s *Scene) Serialize() ([]byte, error) {
	doc := sceneDocument{
		Version:    documentVersion,
		Width:      s.width,
		Height:     s.height,
		Background: s.background,
	}

	for _, o := range s.objects {
		entry := objectEntry{
			ID:          o.ID,
			Type:        o.Type,
			X:           o.X,
			Y:           o.Y,
			Width:       o.Width,
			Height:      o.Height,
			Color:       o.Color,
			StrokeWidth: o.StrokeWidth,
			Points:      o.Points,
			Shape:       o.Shape,
			Text:        o.Text,
			ImageURL:    o.ImageURL,
			Editable:    o.Editable,
		}
		if o.Type == ElementTemplate && o.Instance != nil {
			entry.TemplateID = o.Instance.TemplateID
			for _, rp := range o.Instance.Regions {
				entry.Regions = append(entry.Regions, regionEntry{
					RegionID:    rp.RegionID,
					Name:        rp.Name,
					PathData:    rp.PathData,
					Fill:        rp.Fill,
					Stroke:      rp.Stroke,
					StrokeWidth: rp.StrokeWidth,
				})
			}
		}
		doc.Objects = append(doc.Objects, entry)
	}

	return json.Marshal(doc)
}

// Deserialize replaces the scene with a saved document and starts a fresh
// history from it. Selection and the instance registry are reset first; the
// document does not carry those auxiliary indices.
func (s *Scene) Deserialize(data []byte) error {
	if err := s.loadDocument(data); err != nil {
		return err
	}
	s.history = NewHistory()
	s.snapshot()
	return nil
}

// loadDocument rebuilds the live scene from a document without touching
// history. Shared by Deserialize and undo/redo restore.
func (s *Scene) loadDocument(data []byte) error {
	var doc sceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse scene document: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return fmt.Errorf("scene document has no canvas size")
	}

	s.width = doc.Width
	s.height = doc.Height
	s.background = doc.Background
	if s.background == "" {
		s.background = DefaultBackground
	}

	s.objects = nil
	s.instances = make(map[string]*TemplateInstance)
	s.selectedRegion = nil
	s.selectedElement = ""

	for _, entry := range doc.Objects {
		obj := &Object{
			ID:          entry.ID,
			Type:        entry.Type,
			X:           entry.X,
			Y:           entry.Y,
			Width:       entry.Width,
			Height:      entry.Height,
			Color:       entry.Color,
			StrokeWidth: entry.StrokeWidth,
			Points:      entry.Points,
			Shape:       entry.Shape,
			Text:        entry.Text,
			ImageURL:    entry.ImageURL,
			Editable:    entry.Editable,
		}

		if entry.Type == ElementTemplate {
			ti := &TemplateInstance{
				InstanceID:  entry.ID,
				TemplateID:  entry.TemplateID,
				regionsByID: make(map[string]*RegionPath, len(entry.Regions)),
			}
			for _, re := range entry.Regions {
				rp := &RegionPath{
					RegionID:    re.RegionID,
					Name:        re.Name,
					PathData:    re.PathData,
					Fill:        re.Fill,
					Stroke:      re.Stroke,
					StrokeWidth: re.StrokeWidth,
					Bounds:      PathBounds(re.PathData),
				}
				ti.Regions = append(ti.Regions, rp)
				ti.regionsByID[re.RegionID] = rp
			}
			obj.Instance = ti
			s.instances[ti.InstanceID] = ti
		}

		s.objects = append(s.objects, obj)
	}

	return nil
}
