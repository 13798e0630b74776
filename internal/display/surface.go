// Package display defines the drawing surface the firmware renders to and
// an in-memory LCD implementing it.
package display

// Point is a pixel coordinate. The origin is the top-left corner.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Color is an RGB565 pixel value.
type Color uint16

// Palette used by the firmware.
const (
	Black  Color = 0x0000
	Blue   Color = 0x001F
	Red    Color = 0xF800
	Green  Color = 0x07E0
	Yellow Color = 0xFFE0
	White  Color = 0xFFFF
)

// RGB expands the 5-6-5 channels to 8 bits each.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1F)
	g6 := uint8(c >> 5 & 0x3F)
	b5 := uint8(c & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Font selects a fixed-width bitmap font by glyph size.
type Font struct {
	W, H int
}

// Font12x16 is the large font used for the game over banner.
var Font12x16 = Font{W: 12, H: 16}

// TextStyle describes how text is drawn.
type TextStyle struct {
	Font       Font
	Color      Color
	Background Color
}

// Surface is a pixel display. Drawing never fails: a broken display is
// fatal and handled below this interface.
type Surface interface {
	// FillRect fills the rectangle spanned by the corners p0 and p1, inclusive.
	FillRect(p0, p1 Point, c Color)
	// FillCircle fills a disc of the given radius around center.
	FillCircle(center Point, radius int, c Color)
	// DrawText draws a single line of text with its top-left corner at origin.
	DrawText(origin Point, text string, style TextStyle)
	Width() int
	Height() int
}
