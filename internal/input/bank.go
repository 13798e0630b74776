package input

import "fmt"

// Button identifies one of the board's four push buttons.
type Button uint8

const (
	Button1 Button = iota
	Button2
	Button3
	Button4

	NumButtons = 4
)

// String returns "B1".."B4".
func (b Button) String() string {
	return fmt.Sprintf("B%d", int(b)+1)
}

// Change is one stable transition seen during a Bank sample.
type Change struct {
	Button Button
	Event  Event
}

// Bank debounces every button channel. It is sized at compile time and
// performs no allocation while sampling.
type Bank struct {
	pins    [NumButtons]Pin
	chans   [NumButtons]Debouncer
	changes [NumButtons]Change
}

// NewBank binds one pin per button, in Button order.
func NewBank(pins [NumButtons]Pin) *Bank {
	return &Bank{pins: pins}
}

// Sample reads every pin once and returns the transitions of this tick.
// The returned slice aliases internal storage and is valid until the next call.
func (b *Bank) Sample() []Change {
	out := b.changes[:0]
	for i := range b.pins {
		if b.pins[i] == nil {
			continue
		}
		if ev := b.chans[i].Sample(b.pins[i].Read()); ev != EventNone {
			out = append(out, Change{Button: Button(i), Event: ev})
		}
	}
	return out
}

// Pressed reports the stable state of a button.
func (b *Bank) Pressed(btn Button) bool {
	return b.chans[btn].Pressed()
}

// Snapshot returns the stable state of all buttons.
func (b *Bank) Snapshot() [NumButtons]bool {
	var s [NumButtons]bool
	for i := range b.chans {
		s[i] = b.chans[i].Pressed()
	}
	return s
}
