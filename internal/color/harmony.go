package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Harmony holds color sets derived from one base color. These are computed on
// demand, never stored.
type Harmony struct {
	Base               string   `json:"base"`
	Complementary      string   `json:"complementary"`
	Analogous          []string `json:"analogous"`
	Triadic            []string `json:"triadic"`
	SplitComplementary []string `json:"splitComplementary"`
}

// Harmonies derives the standard harmony sets from a base hex color.
func Harmonies(baseHex string) (Harmony, error) {
	h, s, l, err := hexToHSL(baseHex)
	if err != nil {
		return Harmony{}, err
	}

	rotate := func(deg float64) string {
		return hslToHex(math.Mod(h+deg+360, 360), s, l)
	}

	return Harmony{
		Base:               strings.ToUpper(baseHex),
		Complementary:      rotate(180),
		Analogous:          []string{rotate(-30), rotate(30)},
		Triadic:            []string{rotate(120), rotate(240)},
		SplitComplementary: []string{rotate(150), rotate(210)},
	}, nil
}

func hexToHSL(hex string) (h, s, l float64, err error) {
	if !IsHex(hex) {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	rv, _ := strconv.ParseUint(hex[1:3], 16, 8)
	gv, _ := strconv.ParseUint(hex[3:5], 16, 8)
	bv, _ := strconv.ParseUint(hex[5:7], 16, 8)

	r := float64(rv) / 255
	g := float64(gv) / 255
	b := float64(bv) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l, nil
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l, nil
}

func hslToHex(h, s, l float64) string {
	var r, g, b float64

	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h/360+1.0/3)
		g = hueToRGB(p, q, h/360)
		b = hueToRGB(p, q, h/360-1.0/3)
	}

	return fmt.Sprintf("#%02X%02X%02X",
		int(math.Round(r*255)),
		int(math.Round(g*255)),
		int(math.Round(b*255)))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
