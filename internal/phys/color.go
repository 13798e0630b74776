package phys

// Color tags a particle for rendering. The physics never looks at it; the
// display layer maps each tag to a fill style.
type Color uint8

const (
	ColorGreen Color = iota
	ColorRed
	ColorBlue
	ColorYellow
	ColorWhite
)

// String returns a human-readable name for the color tag.
func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorWhite:
		return "white"
	default:
		return "unknown"
	}
}
