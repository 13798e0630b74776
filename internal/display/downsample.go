package display

import "github.com/vovakirdan/dso-arcade/internal/core"

// terminalColors maps the firmware palette to terminal colors.
var terminalColors = map[Color]core.Color{
	Black:  core.ColorDefault,
	Blue:   core.ColorBrightBlue,
	Red:    core.ColorBrightRed,
	Green:  core.ColorBrightGreen,
	Yellow: core.ColorBrightYellow,
	White:  core.ColorBrightWhite,
}

// TerminalColor returns the terminal color closest to c.
func TerminalColor(c Color) core.Color {
	if tc, ok := terminalColors[c]; ok {
		return tc
	}
	r, g, b := c.RGB()
	switch {
	case r < 64 && g < 64 && b < 64:
		return core.ColorDefault
	case r > 160 && g > 160 && b > 160:
		return core.ColorWhite
	case r >= g && r >= b:
		return core.ColorRed
	case g >= r && g >= b:
		return core.ColorGreen
	default:
		return core.ColorBlue
	}
}

// Downsample renders the framebuffer into dst, one cell per block of
// (width/dst.Width) × (height/dst.Height) pixels. A cell takes the most
// frequent non-black color of its block; labels are overlaid as text.
func (f *Framebuffer) Downsample(dst *core.Screen) {
	dst.Clear()
	cw, ch := dst.Width(), dst.Height()
	if cw == 0 || ch == 0 {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	counts := make(map[Color]int, 4)
	for cy := 0; cy < ch; cy++ {
		y0, y1 := cy*f.height/ch, (cy+1)*f.height/ch
		for cx := 0; cx < cw; cx++ {
			x0, x1 := cx*f.width/cw, (cx+1)*f.width/cw
			clear(counts)

			best, bestN := Black, 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					c := f.pixels[y*f.width+x]
					if c == Black {
						continue
					}
					counts[c]++
					if counts[c] > bestN {
						best, bestN = c, counts[c]
					}
				}
			}
			if bestN > 0 {
				dst.SetCell(cx, cy, '█', TerminalColor(best))
			}
		}
	}

	for _, l := range f.labels {
		x := l.Origin.X * cw / f.width
		y := (l.Origin.Y + l.Style.Font.H/2) * ch / f.height
		// Center the label on its pixel footprint.
		span := len(l.Text) * l.Style.Font.W * cw / f.width
		x += (span - len(l.Text)) / 2
		dst.DrawTextColor(x, y, l.Text, TerminalColor(l.Style.Color))
	}
}
