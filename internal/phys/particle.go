// Package phys implements the particle and racket entities together with the
// elastic collision and wall bounce algorithms. Every type is generic over
// num.Number so the same code drives integer, float and fixed-point ensembles.
package phys

import "github.com/vovakirdan/dso-arcade/internal/num"

// Particle is a round body with position, velocity and a constant radius.
type Particle[T num.Number[T]] struct {
	x, y     T // Center position
	vx, vy   T // Velocity per unit time
	r        T // Radius, fixed at construction
	dt       T // Time increment per step
	collided bool
	color    Color
}

// NewParticle creates a particle at (x, y) moving with (vx, vy).
func NewParticle[T num.Number[T]](x, y, vx, vy, r, dt T, c Color) Particle[T] {
	return Particle[T]{
		x:     x,
		y:     y,
		vx:    vx,
		vy:    vy,
		r:     r,
		dt:    dt,
		color: c,
	}
}

// DefaultParticle mirrors an unset ensemble slot: at the origin, at rest,
// radius 5 and unit time step.
func DefaultParticle[T num.Number[T]]() Particle[T] {
	return NewParticle(num.Zero[T](), num.Zero[T](), num.Zero[T](), num.Zero[T](),
		num.Of[T](5), num.Of[T](1), ColorGreen)
}

func (p *Particle[T]) X() T  { return p.x }
func (p *Particle[T]) Y() T  { return p.y }
func (p *Particle[T]) VX() T { return p.vx }
func (p *Particle[T]) VY() T { return p.vy }
func (p *Particle[T]) R() T  { return p.r }
func (p *Particle[T]) DT() T { return p.dt }

// Color returns the display tag.
func (p *Particle[T]) Color() Color { return p.color }

// SetColor changes the display tag.
func (p *Particle[T]) SetColor(c Color) { p.color = c }

// SetVelocity overrides the velocity vector.
func (p *Particle[T]) SetVelocity(vx, vy T) {
	p.vx = vx
	p.vy = vy
}

// Collided reports whether the particle was already resolved this step,
// either against a wall or against another particle.
func (p *Particle[T]) Collided() bool { return p.collided }

// Step advances the position by one time increment and clears the
// collided mark for the next resolution pass.
func (p *Particle[T]) Step() {
	p.x = p.x.Add(p.vx.Mul(p.dt))
	p.y = p.y.Add(p.vy.Mul(p.dt))
	p.collided = false
}

// Next returns the position after one more Step, without moving.
func (p *Particle[T]) Next() (T, T) {
	return p.x.Add(p.vx.Mul(p.dt)), p.y.Add(p.vy.Mul(p.dt))
}

// Reflect flips the velocity components whose factor is negative.
func (p *Particle[T]) Reflect(flipX, flipY bool) {
	if flipX {
		p.vx = p.vx.Neg()
	}
	if flipY {
		p.vy = p.vy.Neg()
	}
}

// Energy returns vx² + vy², a relative kinetic energy used for diagnostics.
func (p *Particle[T]) Energy() T {
	return num.Sq(p.vx).Add(num.Sq(p.vy))
}
