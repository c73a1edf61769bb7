package action

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modaria/modaria/backend-go/internal/canvas"
	"github.com/modaria/modaria/backend-go/internal/typeid"
)

var (
	ErrUnknownType   = errors.New("unknown action type")
	ErrNotSupported  = errors.New("action not yet supported")
	ErrActionMissing = errors.New("action not found")
	ErrNotPending    = errors.New("action is not pending")
)

// Executor funnels every mutation, human or AI proposed, through the closed
// action vocabulary into one scene. Proposed actions sit in a pending list
// until explicitly applied or rejected; both outcomes are terminal and land
// in the append-only history list.
type Executor struct {
	scene   *canvas.Scene
	pending []*Action
	history []*Action
	applied []string // ids of applied actions, newest last
}

func NewExecutor(scene *canvas.Scene) *Executor {
	return &Executor{scene: scene}
}

func (e *Executor) Scene() *canvas.Scene { return e.scene }

// Propose wraps planner output into pending actions with fresh ids. No
// validation beyond membership in the vocabulary happens here; Execute
// validates per-type params later.
func (e *Executor) Propose(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		a.ID = typeid.NewActionID()
		a.Status = StatusPending
		a.Reason = ""
		stored := a
		e.pending = append(e.pending, &stored)
		out = append(out, a)
	}
	return out
}

// Pending returns the pending actions in proposal order.
func (e *Executor) Pending() []Action {
	out := make([]Action, len(e.pending))
	for i, a := range e.pending {
		out[i] = *a
	}
	return out
}

// History returns the terminal (applied or rejected) actions in the order
// they were settled.
func (e *Executor) History() []Action {
	out := make([]Action, len(e.history))
	for i, a := range e.history {
		out[i] = *a
	}
	return out
}

// Execute performs one action directly against the scene. UI controls call
// this without going through the pending queue.
func (e *Executor) Execute(a Action) error {
	if !Known(a.Type) {
		return fmt.Errorf("%w: %s", ErrUnknownType, a.Type)
	}

	switch a.Type {
	case TypeAddTemplate:
		if a.Params.TemplateID == "" {
			return fmt.Errorf("add_template requires params.templateId")
		}
		_, err := e.scene.AddTemplateInstance(a.Params.TemplateID)
		return err

	case TypeAddShape:
		if a.Params.ShapeType == "" {
			return fmt.Errorf("add_shape requires params.shapeType")
		}
		_, err := e.scene.AddShape(canvas.ShapeKind(a.Params.ShapeType), resolveColor(a.Params))
		return err

	case TypeAddText:
		e.scene.AddText(a.Params.Text)
		return nil

	case TypeFillRegion:
		instanceID, regionID, err := resolveRegion(e.scene, a.Target)
		if err != nil {
			return err
		}
		return e.scene.FillRegion(instanceID, regionID, resolveColor(a.Params))

	case TypeUpdateColor:
		// An exact non-template element id gets repainted; everything else
		// is treated as a region address and falls back to the selection.
		if obj, ok := e.scene.Object(strings.TrimSpace(a.Target)); ok && obj.Type != canvas.ElementTemplate {
			return e.scene.RecolorElement(obj.ID, resolveColor(a.Params))
		}
		if instanceID, regionID, err := resolveRegion(e.scene, a.Target); err == nil {
			return e.scene.FillRegion(instanceID, regionID, resolveColor(a.Params))
		}
		id, err := resolveElement(e.scene, a.Target)
		if err != nil {
			return err
		}
		return e.scene.RecolorElement(id, resolveColor(a.Params))

	case TypeUpdateSize:
		if a.Params.Size == nil {
			return fmt.Errorf("update_size requires params.size")
		}
		id, err := resolveElement(e.scene, a.Target)
		if err != nil {
			return err
		}
		return e.scene.ResizeElement(id, a.Params.Size.Width, a.Params.Size.Height)

	case TypeUpdatePosition:
		if a.Params.Position == nil {
			return fmt.Errorf("update_position requires params.position")
		}
		id, err := resolveElement(e.scene, a.Target)
		if err != nil {
			return err
		}
		return e.scene.MoveElement(id, a.Params.Position.X, a.Params.Position.Y)

	case TypeDeleteElement:
		id, err := resolveElement(e.scene, a.Target)
		if err != nil {
			return err
		}
		return e.scene.RemoveElement(id)

	case TypeDeleteSelected:
		return e.scene.RemoveSelected()

	case TypeClearCanvas:
		e.scene.Clear()
		return nil

	case TypeChangeBackground:
		e.scene.SetBackground(resolveColor(a.Params))
		return nil

	case TypeAddPattern, TypeApplyGradient, TypeUpdateStyle, TypeTransformElement:
		// Deliberate stubs: reported as unsupported, no mutation.
		return fmt.Errorf("%w: %s", ErrNotSupported, a.Type)
	}

	return fmt.Errorf("%w: %s", ErrUnknownType, a.Type)
}

// Apply executes one pending action and settles it as applied, or as
// rejected with the failure reason when execution fails.
func (e *Executor) Apply(id string) error {
	a, err := e.takePending(id)
	if err != nil {
		return err
	}

	if execErr := e.Execute(*a); execErr != nil {
		a.Status = StatusRejected
		a.Reason = execErr.Error()
		e.history = append(e.history, a)
		return execErr
	}

	a.Status = StatusApplied
	e.history = append(e.history, a)
	e.applied = append(e.applied, a.ID)
	return nil
}

// Reject settles one pending action without executing it.
func (e *Executor) Reject(id string) error {
	a, err := e.takePending(id)
	if err != nil {
		return err
	}
	a.Status = StatusRejected
	e.history = append(e.history, a)
	return nil
}

// ApplyAll settles every pending action in one pass. A failing action is
// recorded as rejected with its reason and does not stop the rest of the
// batch.
func (e *Executor) ApplyAll() (applied, rejected int) {
	batch := e.pending
	e.pending = nil

	for _, a := range batch {
		if err := e.Execute(*a); err != nil {
			slog.Warn("action failed", "action", a.Type, "target", a.Target, "error", err)
			a.Status = StatusRejected
			a.Reason = err.Error()
			e.history = append(e.history, a)
			rejected++
			continue
		}
		a.Status = StatusApplied
		e.history = append(e.history, a)
		e.applied = append(e.applied, a.ID)
		applied++
	}
	return applied, rejected
}

// RejectAll settles every pending action as rejected.
func (e *Executor) RejectAll() int {
	batch := e.pending
	e.pending = nil
	for _, a := range batch {
		a.Status = StatusRejected
		e.history = append(e.history, a)
	}
	return len(batch)
}

// UndoLastApplied pops the most recently applied action and rewinds the
// scene one snapshot. Undo is snapshot based, not action inversion, so only
// the newest change can be taken back.
func (e *Executor) UndoLastApplied() bool {
	if len(e.applied) == 0 {
		return false
	}
	e.applied = e.applied[:len(e.applied)-1]
	return e.scene.Undo()
}

func (e *Executor) takePending(id string) (*Action, error) {
	for i, a := range e.pending {
		if a.ID == id {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return a, nil
		}
	}
	for _, a := range e.history {
		if a.ID == id {
			return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, id, a.Status)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrActionMissing, id)
}
