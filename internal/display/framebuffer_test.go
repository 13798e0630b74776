package display

import (
	"testing"

	"github.com/vovakirdan/dso-arcade/internal/core"
)

func TestFillRectInclusiveAndClipped(t *testing.T) {
	fb := NewFramebuffer(20, 10)
	fb.FillRect(Pt(2, 3), Pt(4, 5), Red)

	for _, p := range []Point{{2, 3}, {4, 5}, {3, 4}} {
		if fb.Pixel(p.X, p.Y) != Red {
			t.Errorf("pixel %v not filled", p)
		}
	}
	if fb.Pixel(5, 5) != Black || fb.Pixel(2, 6) != Black {
		t.Error("fill leaked outside the rectangle")
	}

	// Corners given in reverse and partly off-screen.
	fb.FillRect(Pt(25, 12), Pt(18, 8), Green)
	if fb.Pixel(19, 9) != Green || fb.Pixel(18, 8) != Green {
		t.Error("clipped fill missing")
	}

	// Entirely off-screen is a no-op.
	fb.FillRect(Pt(-10, -10), Pt(-1, -1), Blue)
	if fb.Pixel(0, 0) != Black {
		t.Error("off-screen fill drew on the display")
	}
	if fb.Writes() != 3 {
		t.Errorf("Writes() = %d", fb.Writes())
	}
}

func TestFillCircle(t *testing.T) {
	fb := NewFramebuffer(30, 30)
	fb.FillCircle(Pt(10, 10), 3, Blue)

	if fb.Pixel(10, 10) != Blue || fb.Pixel(13, 10) != Blue || fb.Pixel(10, 7) != Blue {
		t.Error("circle body missing")
	}
	if fb.Pixel(13, 13) != Black {
		t.Error("circle corner should stay black")
	}

	// Clipped at the edge without panicking.
	fb.FillCircle(Pt(0, 0), 5, Red)
	if fb.Pixel(0, 0) != Red {
		t.Error("edge circle missing")
	}
}

func TestLabelsErasedByBackgroundFill(t *testing.T) {
	fb := NewFramebuffer(240, 320)
	style := TextStyle{Font: Font12x16, Color: Yellow, Background: Black}
	fb.DrawText(Pt(70, 150), "GAME OVER", style)

	if got := fb.Labels(); len(got) != 1 || got[0].Text != "GAME OVER" {
		t.Fatalf("Labels() = %+v", got)
	}

	fb.FillRect(Pt(0, 0), Pt(10, 10), Black)
	if len(fb.Labels()) != 1 {
		t.Error("partial fill must not erase the label")
	}

	fb.FillRect(Pt(0, 0), Pt(240, 320), Black)
	if len(fb.Labels()) != 0 {
		t.Error("full clear should erase the label")
	}
}

func TestDownsample(t *testing.T) {
	fb := NewFramebuffer(40, 20)
	fb.FillRect(Pt(0, 0), Pt(9, 9), Red)
	fb.FillCircle(Pt(35, 15), 2, Green)
	fb.DrawText(Pt(10, 0), "HI", TextStyle{Font: Font{W: 5, H: 10}, Color: Yellow})

	scr := core.NewScreen(4, 2)
	fb.Downsample(scr)

	if c := scr.GetCell(0, 0); c.Rune != '█' || c.Color != core.ColorBrightRed {
		t.Errorf("cell (0,0) = %+v", c)
	}
	if c := scr.GetCell(3, 1); c.Color != core.ColorBrightGreen {
		t.Errorf("cell (3,1) = %+v", c)
	}
	if c := scr.GetCell(2, 1); c.Rune != ' ' {
		t.Errorf("empty block rendered as %+v", c)
	}
	if got := []rune(scr.Row(0)); string(got[1:3]) != "HI" {
		t.Errorf("label row = %q", string(got))
	}
}

func TestRGB(t *testing.T) {
	r, g, b := White.RGB()
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("White.RGB() = %d,%d,%d", r, g, b)
	}
	r, g, b = Red.RGB()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("Red.RGB() = %d,%d,%d", r, g, b)
	}
	if TerminalColor(Color(0x8410)) == core.ColorDefault {
		t.Error("mid gray should not map to the background")
	}
}
