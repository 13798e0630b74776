// Package squash implements a one-player squash game: a ball bouncing in
// the display, and a racket along the top edge steered with buttons 1 and 4.
// The game ends when the ball reaches the racket's row outside its span.
package squash

import (
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/phys"
)

// GameOverText is the banner drawn when the game ends.
const GameOverText = "GAME OVER"

// GameOverOrigin is where the banner is drawn.
var GameOverOrigin = display.Pt(70, 150)

// Outcome summarizes one step.
type Outcome struct {
	Moved   bool // The racket was displaced
	Bounced bool // The ball hit a wall
	Over    bool // The ball got past the racket
}

// Game is the squash state: ball, racket and the display bounds.
type Game[T num.Number[T]] struct {
	ball   phys.Particle[T]
	racket phys.Racket[T]
	delta  T // Racket displacement per step
	w, h   T

	ticks   uint64
	bounces uint64
	over    bool
}

// New creates a game from its configuration on a w×h display.
func New[T num.Number[T]](cfg config.SquashConfig, w, h int) *Game[T] {
	b, r := cfg.Ball, cfg.Racket
	return &Game[T]{
		ball: phys.NewParticle(
			num.OfFloat[T](b.X), num.OfFloat[T](b.Y),
			num.OfFloat[T](b.VX), num.OfFloat[T](b.VY),
			num.OfFloat[T](b.R), num.Tick[T](b.DT),
			phys.ColorBlue,
		),
		racket: phys.NewRacket(
			num.OfFloat[T](r.CX), num.OfFloat[T](r.CY),
			num.OfFloat[T](r.HW), num.OfFloat[T](r.HH),
		),
		delta: num.OfFloat[T](r.Step),
		w:     num.Of[T](w),
		h:     num.Of[T](h),
	}
}

// Ball returns the ball.
func (g *Game[T]) Ball() *phys.Particle[T] { return &g.ball }

// Racket returns the racket.
func (g *Game[T]) Racket() *phys.Racket[T] { return &g.racket }

// Ticks returns the number of steps run.
func (g *Game[T]) Ticks() uint64 { return g.ticks }

// Bounces returns the number of wall bounces of the ball.
func (g *Game[T]) Bounces() uint64 { return g.bounces }

// Over reports whether the game has ended.
func (g *Game[T]) Over() bool { return g.over }

// Direction maps the two steering buttons to a racket displacement:
// only plus held moves by +Δ, only minus held by -Δ, otherwise nothing.
func (g *Game[T]) Direction(plus, minus bool) (T, bool) {
	switch {
	case plus && !minus:
		return g.delta, true
	case minus && !plus:
		return g.delta.Neg(), true
	default:
		return num.Zero[T](), false
	}
}

// Draw paints the initial screen.
func (g *Game[T]) Draw(s display.Surface) {
	s.FillRect(display.Pt(0, 0), display.Pt(s.Width(), s.Height()), display.Black)
	p0, p1 := g.racketArea()
	s.FillRect(p0, p1, display.Green)
}

// Step advances the game by one period. Once over, it does nothing.
func (g *Game[T]) Step(s display.Surface, plus, minus bool) Outcome {
	var out Outcome
	if g.over {
		out.Over = true
		return out
	}
	g.ticks++

	dx, move := g.Direction(plus, minus)

	p0, p1 := g.ballArea()
	s.FillRect(p0, p1, display.Black)
	g.ball.Step()
	p0, p1 = g.ballArea()
	s.FillRect(p0, p1, display.Red)

	if move {
		p0, p1 = g.racketArea()
		s.FillRect(p0, p1, display.Black)
		g.racket.Step(dx)
		p0, p1 = g.racketArea()
		s.FillRect(p0, p1, display.Green)
		out.Moved = true
	}

	zero := num.Zero[T]()
	out.Bounced = phys.Bounce(&g.ball, zero, g.w, zero, g.h)
	g.racket.Bounce(zero, g.w)

	if out.Bounced {
		g.bounces++
		if Scored(&g.ball, &g.racket) {
			s.DrawText(GameOverOrigin, GameOverText, display.TextStyle{
				Font:       display.Font12x16,
				Color:      display.Yellow,
				Background: display.Black,
			})
			g.over = true
			out.Over = true
		}
	}
	return out
}

// Scored reports whether the ball is level with the racket but outside
// its horizontal span.
func Scored[T num.Number[T]](b *phys.Particle[T], r *phys.Racket[T]) bool {
	if !num.Less(b.Y(), r.CY().Add(r.HH()).Add(b.R())) {
		return false
	}
	lo, hi := r.Span()
	return num.Less(b.X(), lo) || num.Less(hi, b.X())
}

func (g *Game[T]) ballArea() (display.Point, display.Point) {
	b := &g.ball
	return display.Pt(b.X().Sub(b.R()).Int(), b.Y().Sub(b.R()).Int()),
		display.Pt(b.X().Add(b.R()).Int(), b.Y().Add(b.R()).Int())
}

func (g *Game[T]) racketArea() (display.Point, display.Point) {
	r := &g.racket
	return display.Pt(r.CX().Sub(r.HW()).Int(), r.CY().Sub(r.HH()).Int()),
		display.Pt(r.CX().Add(r.HW()).Int(), r.CY().Add(r.HH()).Int())
}
