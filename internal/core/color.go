package core

// Color is the foreground color of a screen cell, an ANSI terminal color.
type Color uint8

// The bright colors show the LCD palette; the dim ones show arbitrary
// RGB565 values by their dominant channel.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
)
