package screen

import (
	"testing"

	"calc/calc/engine"
	"calc/calc/keypad"
	"calc/hal"

	"go.uber.org/zap/zaptest"
)

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB {
	return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) ClearRGB(r, g, b uint8)  {}
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type fakeHAL struct {
	fb    *fakeFB
	keys  chan hal.KeyEvent
	ptr   chan hal.PointerEvent
	ticks chan uint64
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:    newFakeFB(hal.DefaultWidth, hal.DefaultHeight),
		keys:  make(chan hal.KeyEvent, 64),
		ptr:   make(chan hal.PointerEvent, 64),
		ticks: make(chan uint64, 64),
	}
}

func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptr) }
func (h *fakeHAL) Ticks() <-chan uint64         { return h.ticks }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

func newTestScreen(t *testing.T) (*Screen, *fakeHAL, *engine.Engine) {
	t.Helper()
	h := newFakeHAL()
	e := engine.New()
	s, err := New(h, e, WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, h, e
}

func typeText(h *fakeHAL, text string) {
	for _, r := range text {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
}

func center(s *Screen, id keypad.ID) (int, int) {
	k, _ := keypad.ByID(id)
	r := s.layout.keyRect(k)
	return r.x + r.w/2, r.y + r.h/2
}

func TestScreen_KeyboardDispatch(t *testing.T) {
	s, h, e := newTestScreen(t)

	typeText(h, "12+3")
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if e.Current() != "15" {
		t.Fatalf("engine current=%q, want 15", e.Current())
	}
	// The upper display keeps the evaluated expression.
	if got := s.TotalText(); got != "12 + 3" {
		t.Fatalf("total text=%q, want %q", got, "12 + 3")
	}
	if got := s.CurrentText(); got != "15" {
		t.Fatalf("current text=%q, want 15", got)
	}
}

func TestScreen_ReleaseAndUnboundKeysIgnored(t *testing.T) {
	s, h, e := newTestScreen(t)

	h.keys <- hal.KeyEvent{Press: false, Rune: '5'}
	h.keys <- hal.KeyEvent{Press: true, Rune: 'q'}
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if e.Current() != "" {
		t.Fatalf("current=%q, want empty", e.Current())
	}
}

func TestScreen_EscapeClears(t *testing.T) {
	s, h, e := newTestScreen(t)

	typeText(h, "5/0=")
	_ = s.Step()
	if !e.InError() {
		t.Fatalf("current=%q, want Error", e.Current())
	}
	if s.CurrentText() != engine.ErrorText {
		t.Fatalf("current text=%q", s.CurrentText())
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	_ = s.Step()
	if s.TotalText() != "" || s.CurrentText() != "" {
		t.Fatalf("after clear total=%q current=%q", s.TotalText(), s.CurrentText())
	}
}

func TestScreen_KeyAt(t *testing.T) {
	s, _, _ := newTestScreen(t)

	for _, k := range keypad.Keys() {
		x, y := center(s, k.ID)
		got, ok := s.KeyAt(x, y)
		if !ok || got.ID != k.ID {
			t.Fatalf("KeyAt(center of %q)=%v,%v", k.Label, got.Label, ok)
		}
	}
	if _, ok := s.KeyAt(10, 10); ok {
		t.Fatal("display area should not hit a key")
	}
	if _, ok := s.KeyAt(-1, hal.DefaultHeight-1); ok {
		t.Fatal("point left of the grid should not hit a key")
	}
}

func TestScreen_PointerDispatch(t *testing.T) {
	s, h, e := newTestScreen(t)

	for _, id := range []keypad.ID{keypad.Key9, keypad.KeySquareRoot} {
		x, y := center(s, id)
		h.ptr <- hal.PointerEvent{X: x, Y: y, Press: true}
		h.ptr <- hal.PointerEvent{X: x, Y: y, Press: false}
	}
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if e.Current() != "3.0" {
		t.Fatalf("current=%q, want 3.0", e.Current())
	}
}

func TestScreen_HighlightExpires(t *testing.T) {
	s, h, _ := newTestScreen(t)
	theme := DefaultTheme()

	k, _ := keypad.ByID(keypad.Key7)
	r := s.layout.keyRect(k)
	corner := func() uint16 { return h.fb.pixel(r.x+1, r.y+1) }

	_ = s.Step()
	normal := hal.RGB565(theme.Digit.R, theme.Digit.G, theme.Digit.B)
	if corner() != normal {
		t.Fatalf("idle key color=%04x, want %04x", corner(), normal)
	}

	h.ticks <- 1000
	x, y := center(s, keypad.Key7)
	h.ptr <- hal.PointerEvent{X: x, Y: y, Press: true}
	_ = s.Step()
	pressed := hal.RGB565(theme.Pressed.R, theme.Pressed.G, theme.Pressed.B)
	if corner() != pressed {
		t.Fatalf("pressed key color=%04x, want %04x", corner(), pressed)
	}

	h.ticks <- 1000 + pressTicks - 1
	_ = s.Step()
	if corner() != pressed {
		t.Fatal("highlight expired early")
	}

	h.ticks <- 1000 + pressTicks
	_ = s.Step()
	if corner() != normal {
		t.Fatalf("highlight did not expire: %04x", corner())
	}
}

func TestScreen_RendersOnlyWhenDirty(t *testing.T) {
	s, h, _ := newTestScreen(t)

	_ = s.Step()
	_ = s.Step()
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d, want 1", h.fb.presents)
	}

	s.SetTheme(DefaultTheme())
	_ = s.Step()
	if h.fb.presents != 2 {
		t.Fatalf("presents=%d, want 2 after theme change", h.fb.presents)
	}
}

func TestScreen_ThemeApplied(t *testing.T) {
	s, h, _ := newTestScreen(t)

	theme := DefaultTheme()
	theme.Display = rgb(0x102030)
	s.SetTheme(theme)
	_ = s.Step()

	want := hal.RGB565(0x10, 0x20, 0x30)
	if got := h.fb.pixel(0, 0); got != want {
		t.Fatalf("display color=%04x, want %04x", got, want)
	}
}

func TestDrawRight_ClipsFromLeft(t *testing.T) {
	s, h, _ := newTestScreen(t)
	_ = s.Step()

	r := rect{x: 0, y: 0, w: 12, h: 8}
	_ = s.d.FillRectangle(0, 0, 40, 8, s.theme.Display)
	s.drawRight(r, "1.0", 1)

	bg := hal.RGB565(s.theme.Display.R, s.theme.Display.G, s.theme.Display.B)
	for y := 0; y < 8; y++ {
		for x := r.w; x < 40; x++ {
			if h.fb.pixel(x, y) != bg {
				t.Fatalf("pixel (%d,%d) drawn outside clip", x, y)
			}
		}
	}
}

func TestCurrentScale(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"5", 302, currentMax},
		{"1.4142135623730951", 302, currentMin},
		{"123456789012", 302, 4},
		{"1234567890123", 302, 3},
	}
	for _, tt := range tests {
		if got := currentScale(tt.text, tt.width); got != tt.want {
			t.Fatalf("currentScale(%q, %d)=%d, want %d", tt.text, tt.width, got, tt.want)
		}
	}
}
