package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/modaria/modaria/backend-go/internal/action"
	"github.com/modaria/modaria/backend-go/internal/canvas"
	"github.com/modaria/modaria/backend-go/internal/color"
	"github.com/modaria/modaria/backend-go/internal/planner"
)

// DocumentLoader fetches the persisted scene document for a design. A nil or
// empty result means the design has no document yet and starts blank.
type DocumentLoader func(designID string) ([]byte, error)

// DocumentSaver persists the serialized scene document for a design.
type DocumentSaver func(designID string, doc []byte) error

// studioSession holds the server-side canvas for one open design. One editor
// at a time; mu serializes the editor's commands against hub-side saves.
type studioSession struct {
	mu       sync.Mutex
	designID string
	editor   *Client
	scene    *canvas.Scene
	executor *action.Executor
	dirty    bool
}

type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]*studioSession // designID -> session
	load       DocumentLoader
	save       DocumentSaver
	planner    *planner.Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(load DocumentLoader, save DocumentSaver, plannerClient *planner.Client) *Hub {
	return &Hub{
		sessions:   make(map[string]*studioSession),
		load:       load,
		save:       save,
		planner:    plannerClient,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop shuts the hub down and saves every open session.
func (h *Hub) Stop() {
	close(h.done)

	h.mu.Lock()
	sessions := make([]*studioSession, 0, len(h.sessions))
	for _, sess := range h.sessions {
		sessions = append(sessions, sess)
	}
	h.sessions = make(map[string]*studioSession)
	h.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		h.saveSession(sess)
		sess.mu.Unlock()
		if sess.editor != nil {
			close(sess.editor.send)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	if existing, ok := h.sessions[client.DesignID]; ok && existing.editor != nil {
		h.mu.Unlock()
		client.Send(&Message{Type: TypeError, Payload: marshal(ErrorPayload{
			Message: "design is already open in another session",
		})})
		close(client.send)
		return
	}

	scene := canvas.NewScene()
	if h.load != nil {
		doc, err := h.load(client.DesignID)
		if err != nil {
			// Opening on a blank scene here would overwrite the stored
			// document on the next save.
			h.mu.Unlock()
			slog.Error("load design document", "error", err, "design", client.DesignID)
			client.Send(&Message{Type: TypeError, Payload: marshal(ErrorPayload{
				Message: "could not load the design, try again",
			})})
			close(client.send)
			return
		}
		if len(doc) > 0 {
			if err := scene.Deserialize(doc); err != nil {
				h.mu.Unlock()
				client.Send(&Message{Type: TypeError, Payload: marshal(ErrorPayload{
					Message: "stored document is corrupt",
				})})
				close(client.send)
				return
			}
		}
	}

	sess := &studioSession{
		designID: client.DesignID,
		editor:   client,
		scene:    scene,
		executor: action.NewExecutor(scene),
	}
	h.sessions[client.DesignID] = sess
	h.mu.Unlock()

	client.Send(&Message{Type: TypeWelcome, Payload: marshal(statePayload(scene))})
	slog.Info("session opened", "user", client.UserID, "design", client.DesignID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	sess, ok := h.sessions[client.DesignID]
	if !ok || sess.editor != client {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, client.DesignID)
	h.mu.Unlock()

	sess.mu.Lock()
	h.saveSession(sess)
	sess.mu.Unlock()
	close(client.send)

	slog.Info("session closed", "user", client.UserID, "design", client.DesignID)
}

// saveSession persists the session's scene. Caller holds sess.mu.
func (h *Hub) saveSession(sess *studioSession) {
	if !sess.dirty || h.save == nil {
		return
	}
	doc, err := sess.scene.Serialize()
	if err != nil {
		slog.Error("serialize scene", "error", err, "design", sess.designID)
		return
	}
	if err := h.save(sess.designID, doc); err != nil {
		slog.Error("save design document", "error", err, "design", sess.designID)
		return
	}
	sess.dirty = false
}

func (h *Hub) sessionFor(client *Client) *studioSession {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sess, ok := h.sessions[client.DesignID]
	if !ok || sess.editor != client {
		return nil
	}
	return sess
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	sess := h.sessionFor(sender)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch msg.Type {
	case TypeCanvasSelect:
		h.handleSelect(sess, msg)
	case TypeCanvasFill:
		h.handleFill(sess, msg)
	case TypeCanvasBackground:
		h.handleBackground(sess, msg)
	case TypeCanvasTemplate:
		h.handleTemplate(sess, msg)
	case TypeCanvasDelete:
		h.handleDelete(sess, msg)
	case TypeCanvasUndo:
		sess.scene.Undo()
		sess.dirty = true
		h.pushState(sess)
	case TypeCanvasRedo:
		sess.scene.Redo()
		sess.dirty = true
		h.pushState(sess)
	case TypeCanvasSave:
		h.saveSession(sess)
		h.pushState(sess)
	case TypeActionPropose:
		h.handlePropose(sess, msg)
	case TypeActionApply:
		h.handleApply(sess, msg)
	case TypeActionApplyAll:
		applied, rejected := sess.executor.ApplyAll()
		sess.dirty = sess.dirty || applied > 0
		sess.editor.Send(&Message{Type: TypeActionResult, Payload: marshal(ResultPayload{
			Applied:  applied,
			Rejected: rejected,
			Actions:  sess.executor.History(),
		})})
		h.pushState(sess)
	case TypeActionReject:
		h.handleReject(sess, msg)
	case TypeActionRejectAll:
		rejected := sess.executor.RejectAll()
		sess.editor.Send(&Message{Type: TypeActionResult, Payload: marshal(ResultPayload{
			Rejected: rejected,
		})})
	case TypePlanRequest:
		h.handlePlanRequest(sess, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleSelect(sess *studioSession, msg *Message) {
	var p SelectPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid select payload")
		return
	}

	var err error
	switch {
	case p.X != nil && p.Y != nil:
		sess.scene.HitTest(*p.X, *p.Y)
	case p.InstanceID != "" && p.RegionID != "":
		err = sess.scene.SelectRegion(p.InstanceID, p.RegionID)
	case p.ElementID != "":
		err = sess.scene.SelectElement(p.ElementID)
	default:
		sess.scene.ClearSelection()
	}
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}
	h.pushState(sess)
}

func (h *Hub) handleFill(sess *studioSession, msg *Message) {
	var p FillPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid fill payload")
		return
	}

	fill := color.Resolve(p.PantoneCode, p.Color)
	var err error
	if p.InstanceID != "" && p.RegionID != "" {
		err = sess.scene.FillRegion(p.InstanceID, p.RegionID, fill)
	} else {
		err = sess.scene.FillSelectedRegion(fill)
	}
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.dirty = true
	h.pushState(sess)
}

func (h *Hub) handleBackground(sess *studioSession, msg *Message) {
	var p BackgroundPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid background payload")
		return
	}
	sess.scene.SetBackground(color.Resolve(p.PantoneCode, p.Color))
	sess.dirty = true
	h.pushState(sess)
}

func (h *Hub) handleTemplate(sess *studioSession, msg *Message) {
	var p TemplatePayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid template payload")
		return
	}
	if _, err := sess.scene.AddTemplateInstance(p.TemplateID); err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.dirty = true
	h.pushState(sess)
}

func (h *Hub) handleDelete(sess *studioSession, msg *Message) {
	var p DeletePayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid delete payload")
		return
	}

	var err error
	if p.ElementID != "" {
		err = sess.scene.RemoveElement(p.ElementID)
	} else {
		err = sess.scene.RemoveSelected()
	}
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.dirty = true
	h.pushState(sess)
}

func (h *Hub) handlePropose(sess *studioSession, msg *Message) {
	var p ProposePayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid propose payload")
		return
	}

	stored := sess.executor.Propose(p.Actions)
	sess.editor.Send(&Message{Type: TypeActionPending, Payload: marshal(PendingPayload{
		Actions: stored,
	})})
}

func (h *Hub) handleApply(sess *studioSession, msg *Message) {
	var p ActionRefPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid apply payload")
		return
	}

	if err := sess.executor.Apply(p.ActionID); err != nil {
		h.sendError(sess, err.Error())
	} else {
		sess.dirty = true
	}
	sess.editor.Send(&Message{Type: TypeActionResult, Payload: marshal(ResultPayload{
		Actions: sess.executor.History(),
	})})
	h.pushState(sess)
}

func (h *Hub) handleReject(sess *studioSession, msg *Message) {
	var p ActionRefPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		h.sendError(sess, "invalid reject payload")
		return
	}

	if err := sess.executor.Reject(p.ActionID); err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.editor.Send(&Message{Type: TypeActionResult, Payload: marshal(ResultPayload{
		Rejected: 1,
		Actions:  sess.executor.History(),
	})})
}

func (h *Hub) handlePlanRequest(sess *studioSession, msg *Message) {
	if h.planner == nil {
		h.sendError(sess, "AI planning is not configured")
		return
	}

	var p PlanRequestPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Prompt == "" {
		h.sendError(sess, "invalid plan payload")
		return
	}

	state := planner.Summarize(sess.scene, p.Stage)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	plan, err := h.planner.PlanActionsWithRetry(ctx, p.Prompt, p.Context, state, 3)
	if err != nil {
		slog.Warn("plan request failed", "error", err, "design", sess.designID)
		h.sendError(sess, "planning failed: "+err.Error())
		return
	}

	stored := sess.executor.Propose(plan.Actions)
	sess.editor.Send(&Message{Type: TypeActionPending, Payload: marshal(PendingPayload{
		Actions:     stored,
		Explanation: plan.Explanation,
	})})
}

func (h *Hub) pushState(sess *studioSession) {
	sess.editor.Send(&Message{Type: TypeCanvasState, Payload: marshal(statePayload(sess.scene))})
}

func (h *Hub) sendError(sess *studioSession, message string) {
	sess.editor.Send(&Message{Type: TypeError, Payload: marshal(ErrorPayload{Message: message})})
}

func statePayload(scene *canvas.Scene) StatePayload {
	return StatePayload{
		Elements:   scene.Elements(),
		Background: scene.Background(),
		Selected:   scene.SelectedRegion(),
		CanUndo:    scene.CanUndo(),
		CanRedo:    scene.CanRedo(),
	}
}

func marshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal payload", "error", err)
		return nil
	}
	return data
}
