// Package particles implements the free-particle demos: an ensemble of
// balls colliding elastically inside the display, in any numeric
// representation.
package particles

import (
	"math/rand"

	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/phys"
)

// Shape selects how a particle is drawn.
type Shape uint8

const (
	ShapeDisc Shape = iota
	ShapeSquare
)

var palette = map[phys.Color]display.Color{
	phys.ColorGreen:  display.Green,
	phys.ColorRed:    display.Red,
	phys.ColorBlue:   display.Blue,
	phys.ColorYellow: display.Yellow,
	phys.ColorWhite:  display.White,
}

// Fill returns the display color for a particle color tag.
func Fill(c phys.Color) display.Color {
	if dc, ok := palette[c]; ok {
		return dc
	}
	return display.Green
}

// highlight recolors the first particles so their motion is easy to follow.
var highlight = []phys.Color{phys.ColorRed, phys.ColorBlue, phys.ColorYellow, phys.ColorWhite}

// Demo is an ensemble and the way it is drawn.
type Demo[T num.Number[T]] struct {
	ens   *phys.Ensemble[T]
	shape Shape
}

// Random scatters n particles over the top-left 128×128 pixels with
// speeds of 1 to 16 per axis, moving towards +x and +y.
func Random[T num.Number[T]](rng *rand.Rand, n int, r, dt float64, w, h int) *Demo[T] {
	ps := make([]phys.Particle[T], n)
	for i := range ps {
		rnd := rng.Uint32()
		ps[i] = phys.NewParticle(
			num.Of[T](int(byte(rnd)>>1)),
			num.Of[T](int(byte(rnd>>8)>>1)),
			num.Of[T](int(byte(rnd>>16)&0xF)+1),
			num.Of[T](int(byte(rnd>>24)&0xF)+1),
			num.OfFloat[T](r),
			num.Tick[T](dt),
			phys.ColorGreen,
		)
	}
	for i, c := range highlight {
		if i < n {
			ps[i].SetColor(c)
		}
	}

	return &Demo[T]{
		ens:   phys.NewEnsemble(phys.NewBounds[T](w, h), ps...),
		shape: ShapeDisc,
	}
}

// Column is the scripted scene: four integer particles on a vertical
// line, drawn as squares.
func Column(w, h int) *Demo[num.Int] {
	p := func(y, vy int, c phys.Color) phys.Particle[num.Int] {
		return phys.NewParticle[num.Int](100, num.Int(y), 0, num.Int(vy), 10, 1, c)
	}
	return &Demo[num.Int]{
		ens: phys.NewEnsemble(phys.NewBounds[num.Int](w, h),
			p(50, -5, phys.ColorGreen),
			p(100, -8, phys.ColorRed),
			p(150, 5, phys.ColorBlue),
			p(200, 8, phys.ColorYellow),
		),
		shape: ShapeSquare,
	}
}

// Ensemble returns the simulated particles.
func (d *Demo[T]) Ensemble() *phys.Ensemble[T] { return d.ens }

// Draw clears the screen and draws every particle.
func (d *Demo[T]) Draw(s display.Surface) {
	s.FillRect(display.Pt(0, 0), display.Pt(s.Width(), s.Height()), display.Black)
	for i := 0; i < d.ens.Len(); i++ {
		d.draw(s, d.ens.At(i))
	}
}

// Step resolves collisions, then moves every particle, erasing its old
// footprint and drawing it at the new position. Returns the collisions
// of this step.
func (d *Demo[T]) Step(s display.Surface) int {
	n := d.ens.Resolve()
	for i := 0; i < d.ens.Len(); i++ {
		p := d.ens.At(i)
		p0, p1 := area(p)
		s.FillRect(p0, p1, display.Black)
		p.Step()
		d.draw(s, p)
	}
	return n
}

func (d *Demo[T]) draw(s display.Surface, p *phys.Particle[T]) {
	c := Fill(p.Color())
	switch d.shape {
	case ShapeSquare:
		p0, p1 := area(p)
		s.FillRect(p0, p1, c)
	default:
		s.FillCircle(display.Pt(p.X().Int(), p.Y().Int()), p.R().Int(), c)
	}
}

func area[T num.Number[T]](p *phys.Particle[T]) (display.Point, display.Point) {
	return display.Pt(p.X().Sub(p.R()).Int(), p.Y().Sub(p.R()).Int()),
		display.Pt(p.X().Add(p.R()).Int(), p.Y().Add(p.R()).Int())
}
