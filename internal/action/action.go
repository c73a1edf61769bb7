package action

import "github.com/modaria/modaria/backend-go/internal/canvas"

// Type is the closed action vocabulary. It is the only mutation surface an
// external planner ever sees; nothing outside this enumeration reaches the
// scene.
type Type string

const (
	TypeAddTemplate      Type = "add_template"
	TypeAddShape         Type = "add_shape"
	TypeAddText          Type = "add_text"
	TypeAddPattern       Type = "add_pattern"
	TypeFillRegion       Type = "fill_region"
	TypeUpdateColor      Type = "update_color"
	TypeUpdateSize       Type = "update_size"
	TypeUpdatePosition   Type = "update_position"
	TypeUpdateStyle      Type = "update_style"
	TypeTransformElement Type = "transform_element"
	TypeDeleteElement    Type = "delete_element"
	TypeDeleteSelected   Type = "delete_selected"
	TypeClearCanvas      Type = "clear_canvas"
	TypeApplyGradient    Type = "apply_gradient"
	TypeChangeBackground Type = "change_background"
)

var knownTypes = map[Type]bool{
	TypeAddTemplate:      true,
	TypeAddShape:         true,
	TypeAddText:          true,
	TypeAddPattern:       true,
	TypeFillRegion:       true,
	TypeUpdateColor:      true,
	TypeUpdateSize:       true,
	TypeUpdatePosition:   true,
	TypeUpdateStyle:      true,
	TypeTransformElement: true,
	TypeDeleteElement:    true,
	TypeDeleteSelected:   true,
	TypeClearCanvas:      true,
	TypeApplyGradient:    true,
	TypeChangeBackground: true,
}

// Known reports whether t belongs to the closed vocabulary.
func Known(t Type) bool { return knownTypes[t] }

// Status is the action lifecycle state. Applied and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApplied  Status = "applied"
	StatusRejected Status = "rejected"
)

// Size is a width/height payload.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Params is the typed payload of a proposed action. Which fields matter
// depends on the action type.
type Params struct {
	TemplateID  string        `json:"templateId,omitempty"`
	ShapeType   string        `json:"shapeType,omitempty"`
	Text        string        `json:"text,omitempty"`
	Color       string        `json:"color,omitempty"`
	PantoneCode string        `json:"pantoneCode,omitempty"`
	Position    *canvas.Point `json:"position,omitempty"`
	Size        *Size         `json:"size,omitempty"`
	Rotation    float64       `json:"rotation,omitempty"`
	Gradient    []string      `json:"gradient,omitempty"`
	Pattern     string        `json:"pattern,omitempty"`
}

// Action is one proposed mutation. Target is either empty (act on the
// current selection), the sentinel "selected", an element/instance id, an
// "instanceId:regionId" pair, or a bare region name to fuzzy-match.
type Action struct {
	ID     string `json:"id"`
	Type   Type   `json:"type"`
	Target string `json:"target,omitempty"`
	Params Params `json:"params"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}
