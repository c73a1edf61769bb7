package canvas

import (
	"errors"
	"fmt"

	"github.com/modaria/modaria/backend-go/internal/template"
	"github.com/modaria/modaria/backend-go/internal/typeid"
)

var (
	ErrTemplateNotFound = errors.New("template has no geometry yet")
	ErrInstanceNotFound = errors.New("template instance not found")
	ErrRegionNotFound   = errors.New("region not found")
	ErrElementNotFound  = errors.New("element not found")
	ErrNoSelection      = errors.New("select a region first")
	ErrToolNotDrawing   = errors.New("active tool is not a drawing tool")
)

// Tool is the active studio tool. Only drawing tools produce strokes.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolPen    Tool = "pen"
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

func (t Tool) IsDrawing() bool {
	return t == ToolPen || t == ToolBrush || t == ToolEraser
}

// ElementType classifies a top-level drawable.
type ElementType string

const (
	ElementPath     ElementType = "path"
	ElementShape    ElementType = "shape"
	ElementText     ElementType = "text"
	ElementImage    ElementType = "image"
	ElementTemplate ElementType = "template"
)

// ShapeKind is the primitive shape vocabulary.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
)

// RegionPath is the live, fillable sub-path of one placed template instance.
// Path data and bounds come from the static region definition; fill and
// stroke are mutable per instance.
type RegionPath struct {
	RegionID    string  `json:"regionId"`
	Name        string  `json:"name"`
	PathData    string  `json:"pathData"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Bounds      Rect    `json:"bounds"`
}

// TemplateInstance is a placed occurrence of a catalog template. It owns its
// region paths; the selection only ever refers to them by id.
type TemplateInstance struct {
	InstanceID string        `json:"instanceId"`
	TemplateID string        `json:"templateId"`
	Regions    []*RegionPath `json:"regions"`

	regionsByID map[string]*RegionPath
}

// Region returns the live region path for regionID.
func (ti *TemplateInstance) Region(regionID string) (*RegionPath, bool) {
	r, ok := ti.regionsByID[regionID]
	return r, ok
}

// Object is one entry of the scene's ordered drawable list. Which fields are
// meaningful depends on Type.
type Object struct {
	ID          string            `json:"id"`
	Type        ElementType       `json:"type"`
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Color       string            `json:"color,omitempty"`
	StrokeWidth float64           `json:"strokeWidth,omitempty"`
	Points      []Point           `json:"points,omitempty"`
	Shape       ShapeKind         `json:"shape,omitempty"`
	Text        string            `json:"text,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	Editable    bool              `json:"editable"`
	Instance    *TemplateInstance `json:"instance,omitempty"`
}

// Bounds returns the object's canvas-space bounding box.
func (o *Object) Bounds() Rect {
	if o.Type == ElementPath {
		return StrokeBounds(o.Points)
	}
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// SelectedRegion identifies the active region by ids, resolved via lookup at
// use time so a deleted instance can never leave a live pointer behind.
type SelectedRegion struct {
	TemplateInstanceID string `json:"templateInstanceId"`
	RegionID           string `json:"regionId"`
	RegionName         string `json:"regionName"`
}

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultBackground = "#FFFFFF"

	regionStroke         = "#4A4A4A"
	regionStrokeWidth    = 1
	highlightStroke      = "#2563EB"
	highlightStrokeWidth = 2.5

	defaultShapeSize = 100
	defaultShapeX    = 100
	defaultShapeY    = 100
	defaultTextX     = 150
	defaultTextY     = 150
)

// Scene is the single mutable store of all drawable objects. Every mutation
// that changes structure takes a history snapshot; undo and redo rebuild the
// whole scene from a snapshot.
type Scene struct {
	width      float64
	height     float64
	background string

	objects   []*Object
	instances map[string]*TemplateInstance

	selectedRegion  *SelectedRegion
	selectedElement string

	tool    Tool
	history *History
}

// NewScene creates an empty scene and records the initial snapshot so that a
// full undo chain lands back on the empty state.
func NewScene() *Scene {
	s := &Scene{
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: DefaultBackground,
		instances:  make(map[string]*TemplateInstance),
		tool:       ToolSelect,
		history:    NewHistory(),
	}
	s.snapshot()
	return s
}

func (s *Scene) Size() (float64, float64) { return s.width, s.height }
func (s *Scene) Background() string       { return s.background }
func (s *Scene) Tool() Tool               { return s.tool }
func (s *Scene) SetTool(t Tool)           { s.tool = t }

// Objects returns the ordered drawable list. Callers must not mutate it.
func (s *Scene) Objects() []*Object { return s.objects }

// Object returns the top-level object with the given id.
func (s *Scene) Object(id string) (*Object, bool) {
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Instance returns a placed template instance by id.
func (s *Scene) Instance(instanceID string) (*TemplateInstance, bool) {
	ti, ok := s.instances[instanceID]
	return ti, ok
}

// Instances returns every placed template instance in paint order.
func (s *Scene) Instances() []*TemplateInstance {
	out := make([]*TemplateInstance, 0, len(s.instances))
	for _, o := range s.objects {
		if o.Type == ElementTemplate && o.Instance != nil {
			out = append(out, o.Instance)
		}
	}
	return out
}

// AddStroke appends a completed freehand stroke. Strokes are only accepted
// while a drawing tool is active, and history is taken once per completed
// stroke rather than per point.
func (s *Scene) AddStroke(points []Point, strokeColor string, width float64) (*Object, error) {
	if !s.tool.IsDrawing() {
		return nil, ErrToolNotDrawing
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("stroke has no points")
	}

	obj := &Object{
		ID:          typeid.NewElementID(),
		Type:        ElementPath,
		Color:       strokeColor,
		StrokeWidth: width,
		Points:      append([]Point(nil), points...),
		Editable:    true,
	}
	b := obj.Bounds()
	obj.X, obj.Y, obj.Width, obj.Height = b.X, b.Y, b.Width, b.Height

	s.objects = append(s.objects, obj)
	s.snapshot()
	return obj, nil
}

// AddShape inserts a primitive at the default position and makes it the
// selected element.
func (s *Scene) AddShape(kind ShapeKind, fill string) (*Object, error) {
	if kind != ShapeRectangle && kind != ShapeCircle {
		return nil, fmt.Errorf("unknown shape kind %q", kind)
	}

	obj := &Object{
		ID:       typeid.NewElementID(),
		Type:     ElementShape,
		Shape:    kind,
		X:        defaultShapeX,
		Y:        defaultShapeY,
		Width:    defaultShapeSize,
		Height:   defaultShapeSize,
		Color:    fill,
		Editable: true,
	}
	s.objects = append(s.objects, obj)
	s.selectedElement = obj.ID
	s.snapshot()
	return obj, nil
}

// AddText inserts an editable text object at the default position.
func (s *Scene) AddText(content string) *Object {
	if content == "" {
		content = "Text"
	}
	obj := &Object{
		ID:       typeid.NewElementID(),
		Type:     ElementText,
		Text:     content,
		X:        defaultTextX,
		Y:        defaultTextY,
		Width:    120,
		Height:   30,
		Color:    "#000000",
		Editable: true,
	}
	s.objects = append(s.objects, obj)
	s.snapshot()
	return obj
}

// AddImage inserts a decoded image. Decode happens before this call (the
// asset layer owns fetching); a decode failure never reaches the scene.
func (s *Scene) AddImage(sourceURL string, width, height float64) (*Object, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("image source is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has no dimensions")
	}

	obj := &Object{
		ID:       typeid.NewElementID(),
		Type:     ElementImage,
		ImageURL: sourceURL,
		X:        (s.width - width) / 2,
		Y:        (s.height - height) / 2,
		Width:    width,
		Height:   height,
		Editable: true,
	}
	s.objects = append(s.objects, obj)
	s.snapshot()
	return obj, nil
}

// AddTemplateInstance places a catalog template centered on the canvas, one
// live region path per region definition. Unknown template ids fail without
// mutating anything.
func (s *Scene) AddTemplateInstance(templateID string) (*TemplateInstance, error) {
	tmpl, ok := template.Lookup(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	ti := &TemplateInstance{
		InstanceID:  typeid.NewInstanceID(),
		TemplateID:  tmpl.ID,
		regionsByID: make(map[string]*RegionPath, len(tmpl.Regions)),
	}
	for _, def := range tmpl.Regions {
		rp := &RegionPath{
			RegionID:    def.ID,
			Name:        def.Name,
			PathData:    def.PathData,
			Fill:        def.DefaultColor,
			Stroke:      regionStroke,
			StrokeWidth: regionStrokeWidth,
			Bounds:      PathBounds(def.PathData),
		}
		ti.Regions = append(ti.Regions, rp)
		ti.regionsByID[def.ID] = rp
	}

	obj := &Object{
		ID:       ti.InstanceID,
		Type:     ElementTemplate,
		X:        (s.width - tmpl.Width) / 2,
		Y:        (s.height - tmpl.Height) / 2,
		Width:    tmpl.Width,
		Height:   tmpl.Height,
		Editable: true,
		Instance: ti,
	}

	s.objects = append(s.objects, obj)
	s.instances[ti.InstanceID] = ti
	s.snapshot()
	return ti, nil
}

// RemoveElement deletes a top-level object by id. A selection pointing into
// the deleted object is cleared as a side effect.
func (s *Scene) RemoveElement(id string) error {
	idx := -1
	for i, o := range s.objects {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}

	obj := s.objects[idx]
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)

	if obj.Type == ElementTemplate && obj.Instance != nil {
		delete(s.instances, obj.Instance.InstanceID)
		if s.selectedRegion != nil && s.selectedRegion.TemplateInstanceID == obj.Instance.InstanceID {
			s.selectedRegion = nil
		}
	}
	if s.selectedElement == id {
		s.selectedElement = ""
	}

	s.snapshot()
	return nil
}

// RemoveSelected deletes whichever element is currently selected.
func (s *Scene) RemoveSelected() error {
	if s.selectedElement != "" {
		return s.RemoveElement(s.selectedElement)
	}
	if s.selectedRegion != nil {
		return s.RemoveElement(s.selectedRegion.TemplateInstanceID)
	}
	return ErrNoSelection
}

// SetBackground changes the canvas background color.
func (s *Scene) SetBackground(colorHex string) {
	s.background = colorHex
	s.snapshot()
}

// Clear removes every object and resets background, selection, and the
// instance registry. The wipe itself is snapshotted, so one undo restores
// the pre-clear scene.
func (s *Scene) Clear() {
	s.objects = nil
	s.instances = make(map[string]*TemplateInstance)
	s.background = DefaultBackground
	s.selectedRegion = nil
	s.selectedElement = ""
	s.snapshot()
}

// MoveElement repositions a top-level object. Freehand paths store absolute
// points, so those are translated along with the origin.
func (s *Scene) MoveElement(id string, x, y float64) error {
	obj, ok := s.Object(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	dx, dy := x-obj.X, y-obj.Y
	for i := range obj.Points {
		obj.Points[i].X += dx
		obj.Points[i].Y += dy
	}
	obj.X, obj.Y = x, y
	s.snapshot()
	return nil
}

// ResizeElement changes a top-level object's size. Freehand path points are
// scaled about the object origin so the drawn geometry follows the box.
func (s *Scene) ResizeElement(id string, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("size must be positive")
	}
	obj, ok := s.Object(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	if len(obj.Points) > 0 && obj.Width > 0 && obj.Height > 0 {
		sx, sy := width/obj.Width, height/obj.Height
		for i := range obj.Points {
			obj.Points[i].X = obj.X + (obj.Points[i].X-obj.X)*sx
			obj.Points[i].Y = obj.Y + (obj.Points[i].Y-obj.Y)*sy
		}
	}
	obj.Width, obj.Height = width, height
	s.snapshot()
	return nil
}

// RecolorElement sets the paint color of a non-template object.
func (s *Scene) RecolorElement(id string, colorHex string) error {
	obj, ok := s.Object(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	if obj.Type == ElementTemplate {
		return fmt.Errorf("template instance %s takes per-region fills", id)
	}
	obj.Color = colorHex
	s.snapshot()
	return nil
}
