package input

import (
	"fmt"
	"strings"
)

// ScriptPin replays a fixed sequence of levels, one per Read, then holds
// the last level.
type ScriptPin struct {
	levels []Level
	pos    int
	reads  int
}

// NewScriptPin creates a pin that returns the given levels in order.
func NewScriptPin(levels ...Level) *ScriptPin {
	return &ScriptPin{levels: levels}
}

// ParseScript builds a ScriptPin from a string of 'H'/'L' (or '1'/'0')
// characters; spaces are ignored.
func ParseScript(s string) (*ScriptPin, error) {
	levels := make([]Level, 0, len(s))
	for i, c := range strings.ToUpper(s) {
		switch c {
		case 'H', '1':
			levels = append(levels, High)
		case 'L', '0':
			levels = append(levels, Low)
		case ' ':
		default:
			return nil, fmt.Errorf("invalid level %q at %d", c, i)
		}
	}
	return NewScriptPin(levels...), nil
}

// Read returns the next level of the script.
func (p *ScriptPin) Read() Level {
	if len(p.levels) == 0 {
		return High
	}
	p.reads++
	l := p.levels[p.pos]
	if p.pos < len(p.levels)-1 {
		p.pos++
	}
	return l
}

// Done reports whether every scripted level has been read at least once.
func (p *ScriptPin) Done() bool {
	return p.reads >= len(p.levels)
}
