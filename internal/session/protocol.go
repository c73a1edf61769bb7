package session

import (
	"encoding/json"

	"github.com/modaria/modaria/backend-go/internal/action"
	"github.com/modaria/modaria/backend-go/internal/canvas"
)

type Message struct {
	Type     string          `json:"type"`
	DesignID string          `json:"designId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Server pushes the projected canvas after every mutation.
	TypeCanvasState = "canvas.state"

	// Canvas commands
	TypeCanvasSelect     = "canvas.select"
	TypeCanvasFill       = "canvas.fill"
	TypeCanvasUndo       = "canvas.undo"
	TypeCanvasRedo       = "canvas.redo"
	TypeCanvasSave       = "canvas.save"
	TypeCanvasBackground = "canvas.background"
	TypeCanvasTemplate   = "canvas.template"
	TypeCanvasDelete     = "canvas.delete"

	// Action lifecycle
	TypeActionPropose   = "action.propose"
	TypeActionApply     = "action.apply"
	TypeActionApplyAll  = "action.applyAll"
	TypeActionReject    = "action.reject"
	TypeActionRejectAll = "action.rejectAll"
	TypeActionPending   = "action.pending"
	TypeActionResult    = "action.result"

	// AI planning
	TypePlanRequest = "plan.request"
)

type ErrorPayload struct {
	Message string `json:"message"`
}

// StatePayload carries the client-facing projection of the scene. It is sent
// as the welcome payload and again after every mutating command.
type StatePayload struct {
	Elements   []canvas.CanvasElement `json:"elements"`
	Background string                 `json:"background"`
	Selected   *canvas.SelectedRegion `json:"selectedRegion,omitempty"`
	CanUndo    bool                   `json:"canUndo"`
	CanRedo    bool                   `json:"canRedo"`
}

type SelectPayload struct {
	InstanceID string   `json:"instanceId,omitempty"`
	RegionID   string   `json:"regionId,omitempty"`
	ElementID  string   `json:"elementId,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
}

type FillPayload struct {
	InstanceID  string `json:"instanceId,omitempty"`
	RegionID    string `json:"regionId,omitempty"`
	Color       string `json:"color,omitempty"`
	PantoneCode string `json:"pantoneCode,omitempty"`
}

type BackgroundPayload struct {
	Color       string `json:"color,omitempty"`
	PantoneCode string `json:"pantoneCode,omitempty"`
}

type TemplatePayload struct {
	TemplateID string `json:"templateId"`
}

type DeletePayload struct {
	ElementID string `json:"elementId,omitempty"`
}

type ProposePayload struct {
	Actions []action.Action `json:"actions"`
}

type ActionRefPayload struct {
	ActionID string `json:"actionId"`
}

// PendingPayload lists the actions awaiting review, with the planner's
// explanation when they came from a plan request.
type PendingPayload struct {
	Actions     []action.Action `json:"actions"`
	Explanation string          `json:"explanation,omitempty"`
}

type ResultPayload struct {
	Applied  int             `json:"applied"`
	Rejected int             `json:"rejected"`
	Actions  []action.Action `json:"actions,omitempty"`
}

type PlanRequestPayload struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
	Stage   string `json:"stage,omitempty"`
}
