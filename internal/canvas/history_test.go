package canvas

import "testing"

func TestUndoRedo_Inverse(t *testing.T) {
	s := NewScene()

	s.AddShape(ShapeRectangle, "#FF0000")
	s.AddShape(ShapeCircle, "#00FF00")
	s.AddTemplateInstance("tshirt-basic")

	// Three mutations from empty: three undos land back on the empty state.
	for i := 0; i < 3; i++ {
		if !s.Undo() {
			t.Fatalf("undo %d failed", i+1)
		}
	}
	if len(s.Elements()) != 0 {
		t.Fatalf("after full undo: %d elements", len(s.Elements()))
	}
	if s.Undo() {
		t.Fatal("undo past the initial state")
	}

	for i := 0; i < 3; i++ {
		if !s.Redo() {
			t.Fatalf("redo %d failed", i+1)
		}
	}
	els := s.Elements()
	if len(els) != 3 {
		t.Fatalf("after full redo: %d elements", len(els))
	}
	if els[2].Type != ElementTemplate || len(els[2].ColorAreas) != 4 {
		t.Fatalf("redo lost template state: %+v", els[2])
	}
	if s.Redo() {
		t.Fatal("redo past the newest state")
	}
}

func TestUndo_PartialDepth(t *testing.T) {
	s := NewScene()
	s.AddShape(ShapeRectangle, "#111111")
	s.AddShape(ShapeRectangle, "#222222")
	s.AddShape(ShapeRectangle, "#333333")

	s.Undo()
	s.Undo()
	if got := len(s.Elements()); got != 1 {
		t.Fatalf("after two undos: %d elements, want 1", got)
	}

	s.Redo()
	if got := len(s.Elements()); got != 2 {
		t.Fatalf("after one redo: %d elements, want 2", got)
	}
}

func TestHistory_TruncationOnNewMutation(t *testing.T) {
	s := NewScene()
	s.AddShape(ShapeRectangle, "#111111")
	s.AddShape(ShapeRectangle, "#222222")

	s.Undo()
	s.Undo()

	// A new mutation after undo discards the forward entries.
	s.AddTemplateInstance("pencil-skirt")
	if s.Redo() {
		t.Fatal("redo available after post-undo mutation")
	}

	els := s.Elements()
	if len(els) != 1 || els[0].Type != ElementTemplate {
		t.Fatalf("unexpected scene after truncation: %+v", els)
	}
}

func TestUndo_RestoresRegionFill(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")
	s.FillRegion(ti.InstanceID, "bodice", "#BB2649")

	s.Undo()
	areas := s.Elements()[0].ColorAreas
	if areas["bodice"] != "#E8D5C4" {
		t.Fatalf("undo did not revert fill: %q", areas["bodice"])
	}

	s.Redo()
	areas = s.Elements()[0].ColorAreas
	if areas["bodice"] != "#BB2649" {
		t.Fatalf("redo did not replay fill: %q", areas["bodice"])
	}
}

func TestUndo_InstanceRegistryFollowsSnapshots(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")

	s.Undo()
	if _, ok := s.Instance(ti.InstanceID); ok {
		t.Fatal("registry kept an instance the snapshot no longer has")
	}

	s.Redo()
	if _, ok := s.Instance(ti.InstanceID); !ok {
		t.Fatal("registry missing instance after redo")
	}
	// Direct addressing still works against the rebuilt instance.
	if err := s.FillRegion(ti.InstanceID, "skirt", "#0F4C81"); err != nil {
		t.Fatal(err)
	}
}

func TestHistory_Cursor(t *testing.T) {
	h := NewHistory()
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("empty history reports available moves")
	}
	if _, ok := h.Current(); ok {
		t.Fatal("empty history has a current entry")
	}

	h.Push([]byte("a"))
	h.Push([]byte("b"))
	h.Push([]byte("c"))

	if data, _ := h.Back(); string(data) != "b" {
		t.Fatalf("back: got %q", data)
	}
	h.Push([]byte("d"))
	if h.CanRedo() {
		t.Fatal("push did not truncate forward entries")
	}
	if h.Len() != 3 || h.Cursor() != 2 {
		t.Fatalf("len=%d cursor=%d", h.Len(), h.Cursor())
	}
}
