package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/sim"
	"github.com/san-kum/atomsim/internal/viz"
	"gonum.org/v1/gonum/spatial/r2"
)

const background = "#0a0a0a"

// Snapshot writes the engine's current world as SVG in world units: walls,
// wells, bonds (one line per order) and atoms in their element colours.
func Snapshot(w io.Writer, e *sim.Engine) error {
	cfg := e.Config()
	width, height := 800.0, 600.0
	if cfg.Bounded() {
		width, height = cfg.Width, cfg.Height
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	for _, well := range e.Wells() {
		r := math.Max(1, cfg.ClearRadius*(1-well.Progress))
		fmt.Fprintf(&sb, `<circle class="well" cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#bd93f9" stroke-dasharray="4 4"/>
`, well.Center.X, well.Center.Y, r)
	}

	atoms := e.Atoms()
	pos := make(map[dynamo.AtomID]r2.Vec, len(atoms))
	for _, a := range atoms {
		pos[a.ID] = a.Pos
	}
	sb.WriteString(`<g class="bonds" stroke="#888888" stroke-width="2">` + "\n")
	for _, b := range e.Bonds() {
		writeBond(&sb, pos[b.A], pos[b.B], b.Order)
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g class="atoms">` + "\n")
	for _, a := range atoms {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, a.Pos.X, a.Pos.Y, a.Radius, a.Color, a.Symbol)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBond(sb *strings.Builder, a, b r2.Vec, order int) {
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n == 0 {
		return
	}
	px, py := -d.Y/n, d.X/n
	for i := 0; i < max(order, 1); i++ {
		off := (float64(i) - float64(order-1)/2) * 4
		fmt.Fprintf(sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, a.X+px*off, a.Y+py*off, b.X+px*off, b.Y+py*off)
	}
}

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel in
// the colour its cell was inked with.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = "#00ff00"
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.Lit(x, y) {
						continue
					}
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
				}
			}
		}
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SeriesSVG draws values as a polyline against their index, padded by a tenth
// of each range. It returns "" for fewer than two values.
func SeriesSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		minY -= 0.5
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	last := float64(len(values) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke)

	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
