package canvas

import "testing"

func TestPathBounds_Polygon(t *testing.T) {
	r := PathBounds("M 60 140 L 140 140 L 170 280 L 30 280 Z")
	want := Rect{X: 30, Y: 140, Width: 140, Height: 140}
	if r != want {
		t.Fatalf("got %+v, want %+v", r, want)
	}
}

func TestPathBounds_CompactSyntax(t *testing.T) {
	a := PathBounds("M10,20 L30,40 L10,40Z")
	b := PathBounds("M 10 20 L 30 40 L 10 40 Z")
	if a != b {
		t.Fatalf("compact vs spaced: %+v vs %+v", a, b)
	}
}

func TestPathBounds_Curves(t *testing.T) {
	r := PathBounds("M 85 60 Q 100 75 115 60 Z")
	if r.IsEmpty() {
		t.Fatal("empty bounds for curve path")
	}
	if r.X != 85 || r.X+r.Width != 115 {
		t.Fatalf("x range: %+v", r)
	}
	// Control point included: conservative box reaches y=75.
	if r.Y+r.Height != 75 {
		t.Fatalf("y extent: %+v", r)
	}
}

func TestPathBounds_Garbage(t *testing.T) {
	if r := PathBounds(""); !r.IsEmpty() {
		t.Fatalf("empty path: %+v", r)
	}
	if r := PathBounds("Z"); !r.IsEmpty() {
		t.Fatalf("close only: %+v", r)
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 10}
	u := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 30, Height: 15}
	if u != want {
		t.Fatalf("got %+v, want %+v", u, want)
	}
	if a.Union(Rect{}) != a {
		t.Fatal("union with empty rect changed the rect")
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(10, 10) || !r.Contains(30, 30) || !r.Contains(20, 20) {
		t.Fatal("boundary and interior points must be contained")
	}
	if r.Contains(9.99, 20) || r.Contains(20, 30.01) {
		t.Fatal("exterior point reported contained")
	}
}

func TestStrokeBounds(t *testing.T) {
	r := StrokeBounds([]Point{{X: 5, Y: 8}, {X: -3, Y: 20}, {X: 12, Y: 1}})
	want := Rect{X: -3, Y: 1, Width: 15, Height: 19}
	if r != want {
		t.Fatalf("got %+v, want %+v", r, want)
	}
	if !StrokeBounds(nil).IsEmpty() {
		t.Fatal("empty stroke has bounds")
	}
}
