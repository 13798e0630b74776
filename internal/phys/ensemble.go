package phys

import "github.com/vovakirdan/dso-arcade/internal/num"

// Bounds is the rectangle particles bounce inside.
type Bounds[T num.Number[T]] struct {
	XMin, XMax T
	YMin, YMax T
}

// NewBounds returns [0, w] × [0, h].
func NewBounds[T num.Number[T]](w, h int) Bounds[T] {
	return Bounds[T]{
		XMin: num.Zero[T](),
		XMax: num.Of[T](w),
		YMin: num.Zero[T](),
		YMax: num.Of[T](h),
	}
}

// Ensemble is a fixed-size set of particles simulated together. The
// particle slice is allocated once and never grows.
type Ensemble[T num.Number[T]] struct {
	particles  []Particle[T]
	bounds     Bounds[T]
	collisions uint64
}

// NewEnsemble copies the given particles into a new ensemble.
func NewEnsemble[T num.Number[T]](bounds Bounds[T], particles ...Particle[T]) *Ensemble[T] {
	ps := make([]Particle[T], len(particles))
	copy(ps, particles)
	return &Ensemble[T]{particles: ps, bounds: bounds}
}

// Len returns the number of particles.
func (e *Ensemble[T]) Len() int { return len(e.particles) }

// At returns a pointer to the i-th particle.
func (e *Ensemble[T]) At(i int) *Particle[T] { return &e.particles[i] }

// Bounds returns the walls of the ensemble.
func (e *Ensemble[T]) Bounds() Bounds[T] { return e.bounds }

// Collisions returns the number of particle-particle collisions resolved so far.
func (e *Ensemble[T]) Collisions() uint64 { return e.collisions }

// Energy sums Energy over every particle.
func (e *Ensemble[T]) Energy() T {
	total := num.Zero[T]()
	for i := range e.particles {
		total = total.Add(e.particles[i].Energy())
	}
	return total
}

// Resolve runs one collision pass over all pairs i < j. A particle already
// resolved this step is skipped as either operand, a wall bounce short
// circuits the pairwise search for that particle, and the first colliding
// partner wins. Returns the number of particle-particle collisions.
func (e *Ensemble[T]) Resolve() int {
	b := e.bounds
	n := 0

	for i := range e.particles {
		p := &e.particles[i]
		if p.collided {
			continue
		}

		if Bounce(p, b.XMin, b.XMax, b.YMin, b.YMax) {
			continue
		}

		for j := i + 1; j < len(e.particles); j++ {
			q := &e.particles[j]
			if q.collided {
				continue
			}
			if Collide(p, q) {
				n++
				break
			}
		}
	}

	e.collisions += uint64(n)
	return n
}

// Advance steps every particle, clearing their collided marks.
func (e *Ensemble[T]) Advance() {
	for i := range e.particles {
		e.particles[i].Step()
	}
}

// Step resolves collisions and then advances, returning the collisions of this step.
func (e *Ensemble[T]) Step() int {
	n := e.Resolve()
	e.Advance()
	return n
}
