package canvas

import (
	"errors"
	"testing"
)

func TestAddTemplateInstance_ALineDress(t *testing.T) {
	s := NewScene()

	ti, err := s.AddTemplateInstance("a-line-dress")
	if err != nil {
		t.Fatal(err)
	}

	wantRegions := []string{"bodice", "skirt", "left-sleeve", "right-sleeve", "neckline"}
	if len(ti.Regions) != len(wantRegions) {
		t.Fatalf("region count: got %d, want %d", len(ti.Regions), len(wantRegions))
	}
	for i, id := range wantRegions {
		if ti.Regions[i].RegionID != id {
			t.Fatalf("region[%d]: got %q, want %q", i, ti.Regions[i].RegionID, id)
		}
	}

	els := s.Elements()
	if len(els) != 1 {
		t.Fatalf("elements: got %d, want 1", len(els))
	}
	if els[0].Type != ElementTemplate {
		t.Fatalf("type: got %q", els[0].Type)
	}
	if len(els[0].ColorAreas) != 5 {
		t.Fatalf("colorAreas: got %d keys, want 5", len(els[0].ColorAreas))
	}
	if els[0].ColorAreas["bodice"] != "#E8D5C4" {
		t.Fatalf("bodice default fill: got %q", els[0].ColorAreas["bodice"])
	}
}

func TestAddTemplateInstance_Unknown(t *testing.T) {
	s := NewScene()

	_, err := s.AddTemplateInstance("hoverboard")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("error: got %v, want ErrTemplateNotFound", err)
	}
	if len(s.Objects()) != 0 {
		t.Fatal("scene mutated on failed template add")
	}
	if s.CanUndo() {
		t.Fatal("failed add must not snapshot")
	}
}

func TestFillSelectedRegion_Isolation(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")

	if err := s.SelectRegion(ti.InstanceID, "bodice"); err != nil {
		t.Fatal(err)
	}
	if err := s.FillSelectedRegion("#FF6F61"); err != nil {
		t.Fatal(err)
	}

	areas := s.Elements()[0].ColorAreas
	if areas["bodice"] != "#FF6F61" {
		t.Fatalf("bodice: got %q", areas["bodice"])
	}
	// Other regions keep their defaults.
	if areas["skirt"] != "#D9B8A0" {
		t.Fatalf("skirt changed: %q", areas["skirt"])
	}
	if areas["neckline"] != "#C9A98C" {
		t.Fatalf("neckline changed: %q", areas["neckline"])
	}
}

func TestFillRegion_OtherInstanceUntouched(t *testing.T) {
	s := NewScene()
	a, _ := s.AddTemplateInstance("a-line-dress")
	b, _ := s.AddTemplateInstance("a-line-dress")

	if err := s.FillRegion(a.InstanceID, "skirt", "#0F4C81"); err != nil {
		t.Fatal(err)
	}

	rb, _ := b.Region("skirt")
	if rb.Fill != "#D9B8A0" {
		t.Fatalf("sibling instance mutated: %q", rb.Fill)
	}
}

func TestFillSelectedRegion_NoSelection(t *testing.T) {
	s := NewScene()
	if err := s.FillSelectedRegion("#000000"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}
}

func TestFillRegion_UnknownInstance(t *testing.T) {
	s := NewScene()
	s.AddTemplateInstance("a-line-dress")

	err := s.FillRegion("nonexistent-instance", "bodice", "#000000")
	if !errors.Is(err, ErrInstanceNotFound) {
		t.Fatalf("got %v, want ErrInstanceNotFound", err)
	}

	areas := s.Elements()[0].ColorAreas
	if areas["bodice"] != "#E8D5C4" {
		t.Fatal("scene changed on failed fill")
	}
}

func TestSelectRegion_InvalidKeepsPrior(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")
	if err := s.SelectRegion(ti.InstanceID, "skirt"); err != nil {
		t.Fatal(err)
	}

	if err := s.SelectRegion(ti.InstanceID, "hood"); err == nil {
		t.Fatal("expected error for unknown region")
	}
	if err := s.SelectRegion("inst_bogus", "skirt"); err == nil {
		t.Fatal("expected error for unknown instance")
	}

	sel := s.SelectedRegion()
	if sel == nil || sel.RegionID != "skirt" {
		t.Fatalf("prior selection lost: %+v", sel)
	}
}

func TestDeleteInstance_ClearsSelection(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")
	s.SelectRegion(ti.InstanceID, "bodice")

	if err := s.RemoveElement(ti.InstanceID); err != nil {
		t.Fatal(err)
	}

	if len(s.Elements()) != 0 {
		t.Fatal("elements remain after delete")
	}
	if s.SelectedRegion() != nil {
		t.Fatal("dangling region selection after instance delete")
	}
	if _, ok := s.Instance(ti.InstanceID); ok {
		t.Fatal("instance registry not cleaned")
	}
}

func TestSelectRegion_MovesHighlight(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")

	s.SelectRegion(ti.InstanceID, "bodice")
	bodice, _ := ti.Region("bodice")
	if bodice.Stroke != highlightStroke {
		t.Fatalf("bodice not highlighted: %q", bodice.Stroke)
	}

	s.SelectRegion(ti.InstanceID, "skirt")
	if bodice.Stroke != regionStroke {
		t.Fatalf("old highlight not reset: %q", bodice.Stroke)
	}
	skirt, _ := ti.Region("skirt")
	if skirt.Stroke != highlightStroke {
		t.Fatalf("skirt not highlighted: %q", skirt.Stroke)
	}
}

func TestHitTest_ResolvesRegion(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")
	obj, _ := s.Object(ti.InstanceID)

	// Center of the skirt region in canvas space.
	skirt, _ := ti.Region("skirt")
	cx, cy := skirt.Bounds.Center()
	sel, hit := s.HitTest(obj.X+cx, obj.Y+cy)
	if hit == nil || sel == nil {
		t.Fatal("no hit on skirt center")
	}
	if sel.RegionID != "skirt" {
		t.Fatalf("hit region: got %q, want skirt", sel.RegionID)
	}

	// A point outside everything hits nothing and keeps no stale state.
	if sel, hit := s.HitTest(-50, -50); sel != nil || hit != nil {
		t.Fatal("hit reported outside canvas content")
	}
}

func TestAddStroke_RequiresDrawingTool(t *testing.T) {
	s := NewScene()

	pts := []Point{{X: 10, Y: 10}, {X: 40, Y: 60}}
	if _, err := s.AddStroke(pts, "#000000", 2); !errors.Is(err, ErrToolNotDrawing) {
		t.Fatalf("got %v, want ErrToolNotDrawing", err)
	}

	s.SetTool(ToolPen)
	obj, err := s.AddStroke(pts, "#000000", 2)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Type != ElementPath || len(obj.Points) != 2 {
		t.Fatalf("stroke object: %+v", obj)
	}
}

func TestAddShape_BecomesSelected(t *testing.T) {
	s := NewScene()

	obj, err := s.AddShape(ShapeCircle, "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if s.SelectedElement() != obj.ID {
		t.Fatal("new shape is not the selected element")
	}

	if _, err := s.AddShape("triangle", "#FF0000"); err == nil {
		t.Fatal("expected error for unknown shape kind")
	}
}

func TestAddImage_Validation(t *testing.T) {
	s := NewScene()
	if _, err := s.AddImage("", 100, 100); err == nil {
		t.Fatal("expected error for empty source")
	}
	if _, err := s.AddImage("asset://x", 0, 0); err == nil {
		t.Fatal("expected error for missing dimensions")
	}
	if _, err := s.AddImage("asset://x", 200, 120); err != nil {
		t.Fatal(err)
	}
}

func TestClear_ResetsEverything(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("tshirt-basic")
	s.SelectRegion(ti.InstanceID, "neckline")
	s.SetBackground("#112233")

	s.Clear()

	if len(s.Objects()) != 0 || s.Background() != DefaultBackground {
		t.Fatal("clear left state behind")
	}
	if s.SelectedRegion() != nil || s.SelectedElement() != "" {
		t.Fatal("clear left selection behind")
	}

	// Clear is captured by history: one undo restores the pre-clear scene.
	if !s.Undo() {
		t.Fatal("undo after clear failed")
	}
	if len(s.Elements()) != 1 {
		t.Fatal("undo did not restore the cleared scene")
	}
}

func TestRemoveSelected(t *testing.T) {
	s := NewScene()
	obj, _ := s.AddShape(ShapeRectangle, "#00FF00")

	if err := s.RemoveSelected(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Object(obj.ID); ok {
		t.Fatal("selected shape not removed")
	}
	if err := s.RemoveSelected(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}
}

func TestMoveElement_TranslatesPathPoints(t *testing.T) {
	s := NewScene()
	s.SetTool(ToolPen)
	obj, err := s.AddStroke([]Point{{X: 10, Y: 10}, {X: 30, Y: 20}, {X: 20, Y: 30}}, "#000000", 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.MoveElement(obj.ID, 200, 200); err != nil {
		t.Fatal(err)
	}

	b := obj.Bounds()
	if b.X != 200 || b.Y != 200 {
		t.Fatalf("bounds after move = %+v, want origin (200,200)", b)
	}
	if b.Width != 20 || b.Height != 20 {
		t.Fatalf("move changed stroke extent: %+v", b)
	}
	if obj.Points[0].X != 200 || obj.Points[0].Y != 200 {
		t.Fatalf("first point = %+v, want (200,200)", obj.Points[0])
	}
}

func TestResizeElement_ScalesPathPoints(t *testing.T) {
	s := NewScene()
	s.SetTool(ToolBrush)
	obj, err := s.AddStroke([]Point{{X: 10, Y: 10}, {X: 30, Y: 30}}, "#FF0000", 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.ResizeElement(obj.ID, 40, 10); err != nil {
		t.Fatal(err)
	}

	b := obj.Bounds()
	if b.X != 10 || b.Y != 10 || b.Width != 40 || b.Height != 10 {
		t.Fatalf("bounds after resize = %+v, want {10 10 40 10}", b)
	}
}

func TestHitTest_NonTemplateClearsRegionSelection(t *testing.T) {
	s := NewScene()
	ti, _ := s.AddTemplateInstance("a-line-dress")
	if err := s.SelectRegion(ti.InstanceID, "skirt"); err != nil {
		t.Fatal(err)
	}
	shape, _ := s.AddShape(ShapeRectangle, "#FFD700")

	region, obj := s.HitTest(150, 150)
	if region != nil || obj == nil || obj.ID != shape.ID {
		t.Fatalf("hit = (%+v, %+v), want the shape with no region", region, obj)
	}

	if s.SelectedRegion() != nil {
		t.Fatal("region selection survived a non-template hit")
	}
	if err := s.FillSelectedRegion("#000000"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("fill after deselect: %v, want ErrNoSelection", err)
	}

	// The old highlight stroke is gone too.
	skirt, _ := ti.Region("skirt")
	if skirt.Stroke != regionStroke {
		t.Fatalf("skirt stroke = %q, highlight not cleared", skirt.Stroke)
	}
}
