package schema

import (
	"fmt"
	"math"
)

// palette holds the preferred display colors, drawn in order before any
// generated color is used. Hand-picked for contrast on both light and dark
// graph canvases.
var palette = []string{
	"#1f77b4", // blue
	"#ff7f0e", // orange
	"#2ca02c", // green
	"#d62728", // red
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#7f7f7f", // gray
	"#bcbd22", // olive
	"#17becf", // cyan
	"#aec7e8", // light blue
	"#ffbb78", // light orange
}

// colorAt returns the i-th color of the unbounded sequence: the fixed
// palette first, then hues stepped by the golden angle so successive
// generated colors stay visually distinct.
func colorAt(i int) string {
	if i < len(palette) {
		return palette[i]
	}
	hue := math.Mod(float64(i-len(palette))*137.508, 360)
	return hslHex(hue, 0.62, 0.52)
}

// hslHex converts an HSL color to its #rrggbb form. h in degrees, s and l
// in [0,1].
func hslHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round((r+m)*255)),
		int(math.Round((g+m)*255)),
		int(math.Round((b+m)*255)))
}
