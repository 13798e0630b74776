package input

// State is the stable state of a button.
type State uint8

const (
	Released State = iota
	Pressed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a stable-state transition reported by a Debouncer.
type Event uint8

const (
	EventNone Event = iota
	EventPress
	EventRelease
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return "none"
	}
}

// Debouncer latches one raw sample per tick into a stable state.
//
// Filtering comes from the sampling rate alone: a glitch shorter than the
// sampling period is never seen, and every physical transition produces
// exactly one event however many ticks it lasts.
type Debouncer struct {
	raw   Level
	state State
}

// Sample feeds one raw reading and returns the transition it caused, if any.
func (d *Debouncer) Sample(l Level) Event {
	d.raw = l

	switch {
	case l == Low && d.state == Released:
		d.state = Pressed
		return EventPress
	case l == High && d.state == Pressed:
		d.state = Released
		return EventRelease
	default:
		return EventNone
	}
}

// State returns the last stable state.
func (d *Debouncer) State() State { return d.state }

// Pressed reports whether the stable state is Pressed.
func (d *Debouncer) Pressed() bool { return d.state == Pressed }

// Raw returns the most recent raw sample.
func (d *Debouncer) Raw() Level { return d.raw }
