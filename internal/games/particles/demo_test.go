package particles

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/input"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/phys"
)

func TestRandomSeeding(t *testing.T) {
	d := Random[num.Int](rand.New(rand.NewSource(7)), 20, 6, 0.1, 240, 320)
	e := d.Ensemble()

	if e.Len() != 20 {
		t.Fatalf("Len() = %d, expected 20", e.Len())
	}
	for i := 0; i < e.Len(); i++ {
		p := e.At(i)
		if p.X() < 0 || p.X() > 127 || p.Y() < 0 || p.Y() > 127 {
			t.Errorf("particle %d at (%d, %d), expected within 0..127", i, p.X(), p.Y())
		}
		if p.VX() < 1 || p.VX() > 16 || p.VY() < 1 || p.VY() > 16 {
			t.Errorf("particle %d velocity (%d, %d), expected within 1..16", i, p.VX(), p.VY())
		}
		if p.DT() != 1 {
			t.Errorf("particle %d dt = %d, integer ensembles step by one unit", i, p.DT())
		}
	}

	want := []phys.Color{phys.ColorRed, phys.ColorBlue, phys.ColorYellow, phys.ColorWhite, phys.ColorGreen}
	for i, c := range want {
		if got := e.At(i).Color(); got != c {
			t.Errorf("particle %d color = %v, expected %v", i, got, c)
		}
	}

	again := Random[num.Int](rand.New(rand.NewSource(7)), 20, 6, 0.1, 240, 320)
	for i := 0; i < e.Len(); i++ {
		if *e.At(i) != *again.Ensemble().At(i) {
			t.Fatal("same seed should produce the same ensemble")
		}
	}
}

func TestColumnDrawsSquares(t *testing.T) {
	fb := display.NewFramebuffer(240, 320)
	d := Column(240, 320)
	d.Draw(fb)

	if fb.Pixel(90, 40) != display.Green {
		t.Error("first particle should be a green square")
	}

	if n := d.Step(fb); n != 0 {
		t.Errorf("Step() = %d collisions, expected 0", n)
	}
	// Particle 0 moved from y=50 to y=45; its old bottom rows are erased.
	if fb.Pixel(100, 58) != display.Black {
		t.Error("old footprint should be erased")
	}
	if fb.Pixel(90, 35) != display.Green {
		t.Error("new footprint should be drawn")
	}
}

func TestFloatDemoConservesEnergy(t *testing.T) {
	fb := display.NewFramebuffer(240, 320)
	d := Random[num.Float](rand.New(rand.NewSource(42)), 20, 6, 0.1, 240, 320)
	before := d.Ensemble().Energy().Float()

	for i := 0; i < 500; i++ {
		d.Step(fb)
	}

	after := d.Ensemble().Energy().Float()
	if math.Abs(after-before) > 1e-6*before {
		t.Errorf("energy drifted from %v to %v", before, after)
	}
}

func TestAppsOnBoard(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Particles.Seed = 1

	apps := []board.App{
		NewRandom[num.Int]("particles-int", "", cfg),
		NewRandom[num.Float]("particles-float", "", cfg),
		NewRandom[num.Fixed]("particles-fixed", "", cfg),
	}

	for _, app := range apps {
		t.Run(app.ID(), func(t *testing.T) {
			var pins [input.NumButtons]input.Pin
			b := board.NewSim(cfg.Board, pins, nil)

			ran, err := b.Sim(context.Background(), app, 30)
			if err != nil {
				t.Fatalf("Sim() error: %v", err)
			}
			if ran != 30 {
				t.Errorf("ran %d steps, expected 30", ran)
			}

			st := b.Status()
			if st.Ticks != 30 || st.GameOver {
				t.Errorf("status = %+v", st)
			}
			if stats := b.Stats(); stats.Late != 0 || stats.Pending != 1 {
				t.Errorf("stats = %+v", stats)
			}
			if b.Now() != 29*720_000 {
				t.Errorf("clock = %d, expected the 30th deadline", b.Now())
			}
		})
	}
}
