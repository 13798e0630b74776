// Package input turns raw digital pin samples into stable button states.
//
// Buttons are wired active-low with pull-ups: a pin read as Low means the
// button is held down.
package input

// Level is the logic level read from a digital input.
type Level uint8

const (
	High Level = iota
	Low
)

// String returns "high" or "low".
func (l Level) String() string {
	if l == Low {
		return "low"
	}
	return "high"
}

// Pin is a digital input line. Reads are infallible.
type Pin interface {
	Read() Level
}

// PinFunc adapts a function to the Pin interface.
type PinFunc func() Level

// Read calls f.
func (f PinFunc) Read() Level { return f() }
