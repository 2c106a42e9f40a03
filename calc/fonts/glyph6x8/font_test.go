package glyph6x8

import (
	"image/color"
	"testing"

	"calc/calc/engine"
	"calc/calc/keypad"

	"tinygo.org/x/tinyfont"
)

type pixelRecorder struct {
	lit map[[2]int16]bool
}

func (p *pixelRecorder) Size() (x, y int16) { return 64, 16 }

func (p *pixelRecorder) SetPixel(x, y int16, _ color.RGBA) {
	if p.lit == nil {
		p.lit = make(map[[2]int16]bool)
	}
	p.lit[[2]int16{x, y}] = true
}

func (p *pixelRecorder) Display() error { return nil }

func TestFont_CoversCalculatorCharset(t *testing.T) {
	var texts []string
	for _, k := range keypad.Keys() {
		texts = append(texts, k.Label)
	}
	texts = append(texts, engine.ErrorText, "inf", "-inf", "nan", "1e+16", "1e-05", keypad.FormatTotal("1+2-3*4/5"))

	for _, s := range texts {
		for _, r := range s {
			if !Has(r) {
				t.Fatalf("no glyph for %q (in %q)", r, s)
			}
		}
	}
}

func TestFont_DrawsWithinCell(t *testing.T) {
	d := &pixelRecorder{}
	tinyfont.DrawChar(d, Font, 0, Baseline, '8', color.RGBA{A: 0xFF})
	if len(d.lit) == 0 {
		t.Fatal("no pixels drawn")
	}
	for p := range d.lit {
		if p[0] < 0 || p[0] >= Width || p[1] < 0 || p[1] >= Height {
			t.Fatalf("pixel %v outside 6x8 cell", p)
		}
	}

	_, outbox := tinyfont.LineWidth(Font, "123")
	if outbox != 3*Width {
		t.Fatalf("LineWidth=%d, want %d", outbox, 3*Width)
	}
}

func TestFont_UnknownRuneFallsBack(t *testing.T) {
	if Has('Z') {
		t.Fatal("unexpected glyph for Z")
	}
	if bitmap('Z') != bitmap('?') {
		t.Fatal("unknown rune should draw '?'")
	}
}
