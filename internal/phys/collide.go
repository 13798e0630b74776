package phys

import "github.com/vovakirdan/dso-arcade/internal/num"

// Collide resolves a perfectly elastic collision between two round bodies
// of equal mass and reports whether one happened. On success both particles
// are marked collided.
//
// The pair is rejected when the centers are farther apart than the sum of
// the radii, or when the particles are already separating. Coincident or
// nearly coincident centers exchange velocities outright; the analytic
// update divides by the squared distance and is only used when that
// distance is well away from zero.
func Collide[T num.Number[T]](p, q *Particle[T]) bool {
	dx := p.x.Sub(q.x)
	dy := p.y.Sub(q.y)
	rr := num.Sq(dx).Add(num.Sq(dy))

	// Coincident centers: no line of centers exists and the separation test
	// below would always reject the pair.
	if rr.IsZero() {
		exchange(p, q)
		return true
	}

	reach := p.r.Add(q.r)
	if rr.Cmp(num.Sq(reach)) > 0 {
		return false
	}

	px, py := p.Next()
	qx, qy := q.Next()
	dx1 := px.Sub(qx)
	dy1 := py.Sub(qy)
	if rr.Cmp(num.Sq(dx1).Add(num.Sq(dy1))) < 0 {
		return false
	}

	// Too close for the time step: mean radius squared.
	mean := reach.Div(num.Of[T](2))
	if rr.Cmp(num.Sq(mean)) < 0 {
		exchange(p, q)
		return true
	}

	dvx := q.vx.Sub(p.vx)
	dvy := q.vy.Sub(p.vy)
	dxdy := dx.Mul(dy)

	// Project the relative velocity onto the line of centers.
	ix := num.Sq(dx).Mul(dvx).Add(dxdy.Mul(dvy)).Div(rr)
	iy := num.Sq(dy).Mul(dvy).Add(dxdy.Mul(dvx)).Div(rr)

	p.vx = p.vx.Add(ix)
	p.vy = p.vy.Add(iy)
	q.vx = q.vx.Sub(ix)
	q.vy = q.vy.Sub(iy)

	p.collided = true
	q.collided = true
	return true
}

// exchange swaps both velocity components between p and q and marks them.
func exchange[T num.Number[T]](p, q *Particle[T]) {
	p.vx, q.vx = q.vx, p.vx
	p.vy, q.vy = q.vy, p.vy
	p.collided = true
	q.collided = true
}

// Bounce reflects p off the walls of [xmin, xmax] × [ymin, ymax]. Each axis
// is handled on its own: a coordinate at or past a wall is clamped exactly
// onto it and that axis's velocity is negated. Reports whether any clamp
// happened, in which case p is marked collided.
func Bounce[T num.Number[T]](p *Particle[T], xmin, xmax, ymin, ymax T) bool {
	hit := false

	if p.x.Cmp(xmax) >= 0 {
		p.Reflect(true, false)
		p.x = xmax
		hit = true
	}
	if p.x.Cmp(xmin) <= 0 {
		p.Reflect(true, false)
		p.x = xmin
		hit = true
	}

	if p.y.Cmp(ymax) >= 0 {
		p.Reflect(false, true)
		p.y = ymax
		hit = true
	}
	if p.y.Cmp(ymin) <= 0 {
		p.Reflect(false, true)
		p.y = ymin
		hit = true
	}

	if hit {
		p.collided = true
	}
	return hit
}
