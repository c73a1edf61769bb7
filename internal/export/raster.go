package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"strconv"

	"github.com/modaria/modaria/backend-go/internal/canvas"
)

const jpegQuality = 90

// Raster renders the scene to an encoded PNG or JPEG. It is a flat fill
// rasterizer: shapes and template regions are painted as solid fills,
// freehand strokes as thick polylines. Text is left to the vector export,
// which is the download format that carries it faithfully.
func Raster(s *canvas.Scene, format string) ([]byte, error) {
	w, h := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseHex(s.Background())), image.Point{}, draw.Src)

	for _, obj := range s.Objects() {
		drawObject(img, obj)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported raster format %q", format)
	}
	return buf.Bytes(), nil
}

func drawObject(img *image.RGBA, obj *canvas.Object) {
	switch obj.Type {
	case canvas.ElementPath:
		c := parseHex(obj.Color)
		r := obj.StrokeWidth / 2
		if r < 0.5 {
			r = 0.5
		}
		for i := 1; i < len(obj.Points); i++ {
			strokeSegment(img, obj.Points[i-1], obj.Points[i], r, c)
		}
		if len(obj.Points) == 1 {
			fillDisc(img, obj.Points[0].X, obj.Points[0].Y, r, c)
		}

	case canvas.ElementShape:
		c := parseHex(obj.Color)
		if obj.Shape == canvas.ShapeCircle {
			fillEllipse(img, obj.Bounds(), c)
		} else {
			fillRect(img, obj.Bounds(), c)
		}

	case canvas.ElementImage:
		// The raster export has no fetch path; placeholder where the
		// reference image sits.
		fillRect(img, obj.Bounds(), color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF})

	case canvas.ElementTemplate:
		if obj.Instance == nil {
			return
		}
		for _, rp := range obj.Instance.Regions {
			b := rp.Bounds
			b.X += obj.X
			b.Y += obj.Y
			fillRect(img, b, parseHex(rp.Fill))
		}
	}
}

func strokeSegment(img *image.RGBA, a, b canvas.Point, radius float64, c color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Hypot(dx, dy)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fillDisc(img, a.X+dx*t, a.Y+dy*t, radius, c)
	}
}

func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			fx, fy := float64(x)-cx, float64(y)-cy
			if fx*fx+fy*fy <= r*r {
				setPixel(img, x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, b canvas.Rect, c color.RGBA) {
	for y := int(b.Y); y < int(b.Y+b.Height); y++ {
		for x := int(b.X); x < int(b.X+b.Width); x++ {
			setPixel(img, x, y, c)
		}
	}
}

func fillEllipse(img *image.RGBA, b canvas.Rect, c color.RGBA) {
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	rx, ry := b.Width/2, b.Height/2
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := int(b.Y); y < int(b.Y+b.Height); y++ {
		for x := int(b.X); x < int(b.X+b.Width); x++ {
			fx := (float64(x) + 0.5 - cx) / rx
			fy := (float64(y) + 0.5 - cy) / ry
			if fx*fx+fy*fy <= 1 {
				setPixel(img, x, y, c)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// parseHex decodes a #RRGGBB color, black when malformed. Scene colors pass
// through resolution before they land here, so malformed input is rare.
func parseHex(s string) color.RGBA {
	c := color.RGBA{A: 0xFF}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c
}
