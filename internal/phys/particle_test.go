package phys

import (
	"math"
	"testing"

	"github.com/vovakirdan/dso-arcade/internal/num"
)

func intParticle(x, y, vx, vy, r int) Particle[num.Int] {
	return NewParticle(num.Int(x), num.Int(y), num.Int(vx), num.Int(vy), num.Int(r), num.Int(1), ColorGreen)
}

func TestColumnEnsembleStepWithoutCollisions(t *testing.T) {
	e := NewEnsemble(NewBounds[num.Int](240, 320),
		intParticle(100, 50, 0, -5, 10),
		intParticle(100, 100, 0, -8, 10),
		intParticle(100, 150, 0, 5, 10),
		intParticle(100, 200, 0, 8, 10),
	)

	if got := e.Energy(); got != 178 {
		t.Fatalf("Energy() = %d, expected 178", got)
	}

	if n := e.Step(); n != 0 {
		t.Errorf("Step() collisions = %d, expected 0", n)
	}

	wantY := []num.Int{45, 92, 155, 208}
	for i, want := range wantY {
		p := e.At(i)
		if p.Y() != want {
			t.Errorf("particle %d: y = %d, expected %d", i, p.Y(), want)
		}
		if p.X() != 100 {
			t.Errorf("particle %d: x = %d, expected 100", i, p.X())
		}
	}
}

func TestCollideHeadOnSwapsVelocities(t *testing.T) {
	p := intParticle(100, 100, 0, 5, 10)
	q := intParticle(100, 108, 0, -5, 10)

	if !Collide(&p, &q) {
		t.Fatal("expected a collision")
	}
	if !p.Collided() || !q.Collided() {
		t.Error("both particles should be marked collided")
	}
	if p.VX() != 0 || p.VY() != -5 {
		t.Errorf("p velocity = (%d, %d), expected (0, -5)", p.VX(), p.VY())
	}
	if q.VX() != 0 || q.VY() != 5 {
		t.Errorf("q velocity = (%d, %d), expected (0, 5)", q.VX(), q.VY())
	}
}

func TestCollideRejects(t *testing.T) {
	tests := []struct {
		name string
		p, q Particle[num.Int]
	}{
		{"too far apart", intParticle(100, 100, 0, 5, 10), intParticle(100, 125, 0, -5, 10)},
		{"separating", intParticle(100, 100, 0, -5, 10), intParticle(100, 108, 0, 5, 10)},
		{"touching but separating", intParticle(100, 100, -1, 0, 10), intParticle(120, 100, 1, 0, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, q := tc.p, tc.q
			if Collide(&p, &q) {
				t.Error("expected no collision")
			}
			if p.Collided() || q.Collided() {
				t.Error("rejected pair must not be marked collided")
			}
			if p.VY() != tc.p.VY() || q.VY() != tc.q.VY() {
				t.Error("rejected pair must keep its velocities")
			}
		})
	}
}

func TestCollideCoincidentCentersExchanges(t *testing.T) {
	p := intParticle(50, 50, 3, -2, 6)
	q := intParticle(50, 50, -1, 4, 6)

	if !Collide(&p, &q) {
		t.Fatal("coincident centers must resolve")
	}
	if p.VX() != -1 || p.VY() != 4 || q.VX() != 3 || q.VY() != -2 {
		t.Errorf("velocities not exchanged: p=(%d,%d) q=(%d,%d)", p.VX(), p.VY(), q.VX(), q.VY())
	}
}

func TestCollideConservesEnergy(t *testing.T) {
	dt := num.Float(0.1)
	p := NewParticle[num.Float](100, 100, 3, 1, 10, dt, ColorRed)
	q := NewParticle[num.Float](112, 105, -2, 0, 10, dt, ColorBlue)

	before := p.Energy() + q.Energy()
	if !Collide(&p, &q) {
		t.Fatal("expected analytic collision")
	}
	after := p.Energy() + q.Energy()

	if math.Abs(float64(after-before)) > 1e-9 {
		t.Errorf("energy changed: before=%v after=%v", before, after)
	}
	// Relative velocity along the line of centers must flip sign.
	dx, dy := float64(p.X()-q.X()), float64(p.Y()-q.Y())
	closing := dx*float64(p.VX()-q.VX()) + dy*float64(p.VY()-q.VY())
	if closing < 0 {
		t.Errorf("particles still closing after collision: %v", closing)
	}
}

func TestCollideConservesEnergyFixed(t *testing.T) {
	dt := num.OfFloat[num.Fixed](0.1)
	p := NewParticle(num.Of[num.Fixed](100), num.Of[num.Fixed](100), num.Of[num.Fixed](3), num.Of[num.Fixed](1), num.Of[num.Fixed](10), dt, ColorRed)
	q := NewParticle(num.Of[num.Fixed](112), num.Of[num.Fixed](105), num.Of[num.Fixed](-2), num.Of[num.Fixed](0), num.Of[num.Fixed](10), dt, ColorBlue)

	before := p.Energy().Add(q.Energy()).Float()
	if !Collide(&p, &q) {
		t.Fatal("expected analytic collision")
	}
	after := p.Energy().Add(q.Energy()).Float()

	if math.Abs(after-before) > 0.05 {
		t.Errorf("energy drifted beyond rounding: before=%v after=%v", before, after)
	}
}

func TestBounceClampsAndReflects(t *testing.T) {
	tests := []struct {
		name           string
		p              Particle[num.Int]
		wantX, wantY   num.Int
		wantVX, wantVY num.Int
		wantHit        bool
	}{
		{"inside", intParticle(50, 60, 3, 2, 5), 50, 60, 3, 2, false},
		{"past right", intParticle(250, 60, 3, 2, 5), 240, 60, -3, 2, true},
		{"past left", intParticle(-4, 60, -3, 2, 5), 0, 60, 3, 2, true},
		{"past bottom", intParticle(50, 330, 3, 2, 5), 50, 320, 3, -2, true},
		{"past top", intParticle(50, -1, 3, -2, 5), 50, 0, 3, 2, true},
		{"on the wall", intParticle(240, 60, 3, 2, 5), 240, 60, -3, 2, true},
		{"corner", intParticle(260, 400, 3, 2, 5), 240, 320, -3, -2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.p
			hit := Bounce(&p, 0, 240, 0, 320)
			if hit != tc.wantHit {
				t.Errorf("Bounce() = %v, expected %v", hit, tc.wantHit)
			}
			if p.Collided() != tc.wantHit {
				t.Errorf("Collided() = %v, expected %v", p.Collided(), tc.wantHit)
			}
			if p.X() != tc.wantX || p.Y() != tc.wantY {
				t.Errorf("position = (%d, %d), expected (%d, %d)", p.X(), p.Y(), tc.wantX, tc.wantY)
			}
			if p.VX() != tc.wantVX || p.VY() != tc.wantVY {
				t.Errorf("velocity = (%d, %d), expected (%d, %d)", p.VX(), p.VY(), tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestResolveAtMostOneCollisionPerParticle(t *testing.T) {
	e := NewEnsemble(NewBounds[num.Int](240, 320),
		intParticle(100, 100, 0, 5, 10),
		intParticle(100, 108, 0, -5, 10),
		intParticle(100, 92, 0, 5, 10),
	)

	if n := e.Resolve(); n != 1 {
		t.Fatalf("Resolve() = %d, expected 1", n)
	}
	if !e.At(0).Collided() || !e.At(1).Collided() {
		t.Error("first pair should have collided")
	}
	if e.At(2).Collided() {
		t.Error("third particle must not collide with an already resolved particle")
	}
	if e.At(2).VY() != 5 {
		t.Errorf("third particle velocity changed: %d", e.At(2).VY())
	}
	if e.Collisions() != 1 {
		t.Errorf("Collisions() = %d, expected 1", e.Collisions())
	}

	e.Advance()
	for i := 0; i < e.Len(); i++ {
		if e.At(i).Collided() {
			t.Errorf("particle %d still marked after Advance", i)
		}
	}
}

func TestResolveWallBounceShortCircuits(t *testing.T) {
	e := NewEnsemble(NewBounds[num.Int](240, 320),
		intParticle(240, 100, 4, 0, 10),
		intParticle(232, 100, -4, 0, 10),
	)

	if n := e.Resolve(); n != 0 {
		t.Errorf("Resolve() = %d, expected 0 after a wall bounce", n)
	}
	if e.At(0).VX() != -4 {
		t.Errorf("bounced particle vx = %d, expected -4", e.At(0).VX())
	}
	if e.At(1).VX() != -4 {
		t.Errorf("partner vx = %d, expected untouched -4", e.At(1).VX())
	}
}

func TestRandomEnsembleNeverDoubleCollides(t *testing.T) {
	ps := make([]Particle[num.Int], 0, 12)
	for i := 0; i < 12; i++ {
		ps = append(ps, intParticle(20+(i%4)*9, 20+(i/4)*9, (i%3)-1, (i%5)-2, 6))
	}
	e := NewEnsemble(NewBounds[num.Int](80, 80), ps...)

	for step := 0; step < 200; step++ {
		n := e.Resolve()
		marked := 0
		for i := 0; i < e.Len(); i++ {
			if e.At(i).Collided() {
				marked++
			}
		}
		if 2*n > marked {
			t.Fatalf("step %d: %d collisions but only %d marked particles", step, n, marked)
		}
		e.Advance()
	}
}
