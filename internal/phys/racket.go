package phys

import "github.com/vovakirdan/dso-arcade/internal/num"

// Racket is a paddle confined to the horizontal axis. Only its center x
// moves; it has no velocity and is displaced directly by the controller.
type Racket[T num.Number[T]] struct {
	cx, cy T // Center
	hw, hh T // Half-width and half-height
}

// NewRacket creates a racket centered at (cx, cy).
func NewRacket[T num.Number[T]](cx, cy, hw, hh T) Racket[T] {
	return Racket[T]{cx: cx, cy: cy, hw: hw, hh: hh}
}

func (r *Racket[T]) CX() T { return r.cx }
func (r *Racket[T]) CY() T { return r.cy }
func (r *Racket[T]) HW() T { return r.hw }
func (r *Racket[T]) HH() T { return r.hh }

// Step moves the racket by dx.
func (r *Racket[T]) Step(dx T) {
	r.cx = r.cx.Add(dx)
}

// Span returns the horizontal extent [cx-hw, cx+hw].
func (r *Racket[T]) Span() (T, T) {
	return r.cx.Sub(r.hw), r.cx.Add(r.hw)
}

// Bounce clamps cx into [xmin, xmax] and reports whether it had to.
func (r *Racket[T]) Bounce(xmin, xmax T) bool {
	hit := false
	if r.cx.Cmp(xmax) >= 0 {
		r.cx = xmax
		hit = true
	}
	if r.cx.Cmp(xmin) <= 0 {
		r.cx = xmin
		hit = true
	}
	return hit
}
