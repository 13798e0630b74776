package input

import (
	"sync"
	"time"
)

// VirtualPin is a host-side input line driven by the terminal. Terminals
// report key presses but not releases, so a press holds the line Low until
// a release deadline passes; repeated key events extend the hold.
type VirtualPin struct {
	mu      sync.Mutex
	forced  bool
	level   Level
	until   time.Time
	nowFunc func() time.Time
}

// NewVirtualPin creates a released (High) pin.
func NewVirtualPin() *VirtualPin {
	return &VirtualPin{level: High, nowFunc: time.Now}
}

// Press holds the line Low for the given duration.
func (p *VirtualPin) Press(hold time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.until = p.nowFunc().Add(hold)
}

// Set forces the line to a level until the next Set or Release.
func (p *VirtualPin) Set(l Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forced = true
	p.level = l
}

// Release drops any hold or forced level.
func (p *VirtualPin) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forced = false
	p.level = High
	p.until = time.Time{}
}

// Read returns Low while a press is held or the line is forced Low.
func (p *VirtualPin) Read() Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.forced {
		return p.level
	}
	if p.nowFunc().Before(p.until) {
		return Low
	}
	return High
}
