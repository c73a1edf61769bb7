// Package export renders a scene into a standalone SVG document. The SVG is
// what gets downloaded and, base64-wrapped, what the render service receives
// as the sketch image.
package export

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/modaria/modaria/backend-go/internal/canvas"
)

// SVG renders the scene to an SVG document in paint order.
func SVG(s *canvas.Scene) string {
	w, h := s.Size()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`, w, h, w, h)
	b.WriteByte('\n')
	fmt.Fprintf(&b, `<rect width="%g" height="%g" fill="%s"/>`, w, h, escape(s.Background()))
	b.WriteByte('\n')

	for _, obj := range s.Objects() {
		writeObject(&b, obj)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// DataURL wraps the scene's SVG export as a base64 data URL.
func DataURL(s *canvas.Scene) string {
	svg := SVG(s)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func writeObject(b *strings.Builder, obj *canvas.Object) {
	switch obj.Type {
	case canvas.ElementPath:
		if len(obj.Points) == 0 {
			return
		}
		var d strings.Builder
		fmt.Fprintf(&d, "M %g %g", obj.Points[0].X, obj.Points[0].Y)
		for _, p := range obj.Points[1:] {
			fmt.Fprintf(&d, " L %g %g", p.X, p.Y)
		}
		fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="%g" stroke-linecap="round"/>`,
			d.String(), escape(obj.Color), obj.StrokeWidth)

	case canvas.ElementShape:
		if obj.Shape == canvas.ShapeCircle {
			fmt.Fprintf(b, `<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s"/>`,
				obj.X+obj.Width/2, obj.Y+obj.Height/2, obj.Width/2, obj.Height/2, escape(obj.Color))
		} else {
			fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`,
				obj.X, obj.Y, obj.Width, obj.Height, escape(obj.Color))
		}

	case canvas.ElementText:
		fmt.Fprintf(b, `<text x="%g" y="%g" fill="%s" font-family="sans-serif" font-size="18">%s</text>`,
			obj.X, obj.Y+18, escape(obj.Color), html.EscapeString(obj.Text))

	case canvas.ElementImage:
		fmt.Fprintf(b, `<image x="%g" y="%g" width="%g" height="%g" href="%s"/>`,
			obj.X, obj.Y, obj.Width, obj.Height, escape(obj.ImageURL))

	case canvas.ElementTemplate:
		if obj.Instance == nil {
			return
		}
		// One translated group per instance; region paths keep their live
		// fills and strokes.
		fmt.Fprintf(b, `<g id="%s" transform="translate(%g %g)">`, escape(obj.ID), obj.X, obj.Y)
		b.WriteByte('\n')
		for _, rp := range obj.Instance.Regions {
			fmt.Fprintf(b, `<path id="%s" d="%s" fill="%s" stroke="%s" stroke-width="%g"/>`,
				escape(rp.RegionID), escape(rp.PathData), escape(rp.Fill), escape(rp.Stroke), rp.StrokeWidth)
			b.WriteByte('\n')
		}
		b.WriteString("</g>")
	}
	b.WriteByte('\n')
}

func escape(s string) string {
	return html.EscapeString(s)
}
