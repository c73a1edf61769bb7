package canvas

import (
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Point is a canvas-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathBounds computes the bounding box of an SVG-style path string using
// absolute M/L/Q/C/Z commands. Control points are included, which makes the
// box conservative for curves; hit testing tolerates that the same way the
// renderer does.
func PathBounds(pathData string) Rect {
	fields := strings.Fields(normalizePath(pathData))

	var minX, minY, maxX, maxY float64
	first := true

	include := func(x, y float64) {
		if first {
			minX, maxX = x, x
			minY, maxY = y, y
			first = false
			return
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	i := 0
	readPoint := func() (float64, float64, bool) {
		if i+1 >= len(fields) {
			return 0, 0, false
		}
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			return 0, 0, false
		}
		i += 2
		return x, y, true
	}

	for i < len(fields) {
		cmd := fields[i]
		i++
		var points int
		switch cmd {
		case "M", "L":
			points = 1
		case "Q":
			points = 2
		case "C":
			points = 3
		case "Z", "z":
			continue
		default:
			// Bare coordinate pair continuing the previous command.
			i--
			points = 1
		}
		for p := 0; p < points; p++ {
			x, y, ok := readPoint()
			if !ok {
				if first {
					return Rect{}
				}
				return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
			}
			include(x, y)
		}
	}

	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// normalizePath inserts spaces around command letters so that both
// "M10 20L30 40" and "M 10 20 L 30 40" tokenize the same way.
func normalizePath(pathData string) string {
	var b strings.Builder
	for _, r := range pathData {
		switch r {
		case 'M', 'L', 'Q', 'C', 'Z', 'z':
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		case ',':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StrokeBounds computes the bounding box of a freehand point list.
func StrokeBounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
