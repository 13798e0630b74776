package display

import (
	"sync"

	"github.com/vovakirdan/dso-arcade/internal/core"
)

// Label is text drawn onto the framebuffer. Text is kept as a label rather
// than rasterized so it stays legible when the LCD is shown at terminal
// resolution.
type Label struct {
	Origin Point
	Text   string
	Style  TextStyle
}

// Framebuffer is an in-memory LCD. It is safe for concurrent use so a
// viewer can snapshot it while the firmware draws.
type Framebuffer struct {
	mu     sync.RWMutex
	width  int
	height int
	pixels []Color
	labels []Label
	writes uint64
}

// NewFramebuffer creates a black w×h display.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		width:  w,
		height: h,
		pixels: make([]Color, w*h),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Pixel returns the color at (x, y), or Black outside the display.
func (f *Framebuffer) Pixel(x, y int) Color {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Black
	}
	return f.pixels[y*f.width+x]
}

// Labels returns a copy of the text drawn so far.
func (f *Framebuffer) Labels() []Label {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Label, len(f.labels))
	copy(out, f.labels)
	return out
}

// Writes returns the number of drawing operations performed.
func (f *Framebuffer) Writes() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.writes
}

// FillRect fills the inclusive rectangle p0..p1, clipped to the display.
// Filling over a label's area erases the label.
func (f *Framebuffer) FillRect(p0, p1 Point, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	area := core.Span(p0.X, p0.Y, p1.X, p1.Y).Intersect(f.bounds())
	if area.Empty() {
		return
	}
	for y := area.Y; y < area.Bottom(); y++ {
		row := f.pixels[y*f.width:]
		for x := area.X; x < area.Right(); x++ {
			row[x] = c
		}
	}

	if c == Black && len(f.labels) > 0 {
		f.eraseLabels(area)
	}
}

// FillCircle fills the disc of the given radius around center.
func (f *Framebuffer) FillCircle(center Point, radius int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		y := center.Y + dy
		if y < 0 || y >= f.height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := center.X + dx
			if x < 0 || x >= f.width || dx*dx+dy*dy > rr {
				continue
			}
			f.pixels[y*f.width+x] = c
		}
	}
}

// DrawText records a label and paints its background box.
func (f *Framebuffer) DrawText(origin Point, text string, style TextStyle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	box := labelBox(origin, text, style).Intersect(f.bounds())
	for y := box.Y; y < box.Bottom(); y++ {
		row := f.pixels[y*f.width:]
		for x := box.X; x < box.Right(); x++ {
			row[x] = style.Background
		}
	}
	f.labels = append(f.labels, Label{Origin: origin, Text: text, Style: style})
}

func (f *Framebuffer) bounds() core.Rect {
	return core.NewRect(0, 0, f.width, f.height)
}

func (f *Framebuffer) eraseLabels(area core.Rect) {
	kept := f.labels[:0]
	for _, l := range f.labels {
		if !area.Covers(labelBox(l.Origin, l.Text, l.Style)) {
			kept = append(kept, l)
		}
	}
	f.labels = kept
}

func labelBox(origin Point, text string, style TextStyle) core.Rect {
	return core.NewRect(origin.X, origin.Y, len(text)*style.Font.W, style.Font.H)
}
