package canvas

// History is an append-only log of serialized scene snapshots with a movable
// cursor. Appending after an undo truncates the redo tail (linear model, no
// branching).
type History struct {
	entries [][]byte
	cursor  int
}

// NewHistory creates an empty history (cursor -1).
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push appends a snapshot and moves the cursor to it, discarding any forward
// entries left behind by undo.
func (h *History) Push(snapshot []byte) {
	h.entries = append(h.entries[:h.cursor+1], snapshot)
	h.cursor = len(h.entries) - 1
}

// Current returns the snapshot under the cursor.
func (h *History) Current() ([]byte, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return nil, false
	}
	return h.entries[h.cursor], true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *History) Len() int      { return len(h.entries) }
func (h *History) Cursor() int   { return h.cursor }

// Back moves the cursor one entry back and returns that snapshot.
func (h *History) Back() ([]byte, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward and returns that snapshot.
func (h *History) Forward() ([]byte, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// snapshot serializes the scene and appends it to the history. Called by
// every structural mutation; stroke completion, not per point.
func (s *Scene) snapshot() {
	data, err := s.Serialize()
	if err != nil {
		// Serialization of in-memory state only fails on programmer error;
		// skip the entry rather than poisoning the log.
		return
	}
	s.history.Push(data)
}

// Undo rewinds one snapshot and rebuilds the scene from it wholesale.
func (s *Scene) Undo() bool {
	data, ok := s.history.Back()
	if !ok {
		return false
	}
	return s.restore(data)
}

// Redo replays one snapshot forward.
func (s *Scene) Redo() bool {
	data, ok := s.history.Forward()
	if !ok {
		return false
	}
	return s.restore(data)
}

func (s *Scene) CanUndo() bool { return s.history.CanUndo() }
func (s *Scene) CanRedo() bool { return s.history.CanRedo() }

// restore replaces the live scene with a snapshot without touching history.
func (s *Scene) restore(data []byte) bool {
	if err := s.loadDocument(data); err != nil {
		return false
	}
	return true
}
