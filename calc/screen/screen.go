// Package screen draws the calculator on a framebuffer and feeds keyboard
// and pointer input from the HAL into the engine. It is driven one frame at
// a time by Step.
package screen

import (
	"errors"
	"image/color"

	"calc/calc/engine"
	"calc/calc/fonts/glyph6x8"
	"calc/calc/keypad"
	"calc/hal"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
)

// pressTicks is how long a pressed key stays highlighted, in host ticks.
const pressTicks = 120

var ErrNoFramebuffer = errors.New("screen: no framebuffer")

type highlight struct {
	id     keypad.ID
	until  uint64
	active bool
}

type Screen struct {
	log *zap.Logger
	e   *engine.Engine

	fb hal.Framebuffer
	d  *fbDisplay

	keys  <-chan hal.KeyEvent
	ptr   <-chan hal.PointerEvent
	ticks <-chan uint64

	theme  Theme
	layout layout

	// Display text is refreshed only from engine notifications.
	total   string
	current string

	now     uint64
	pressed highlight
	dirty   bool
}

type Option func(*Screen)

func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTheme(t Theme) Option {
	return func(s *Screen) { s.theme = t }
}

// New attaches a screen to e and to the HAL's display and input devices.
func New(h hal.HAL, e *engine.Engine, opts ...Option) (*Screen, error) {
	s := &Screen{
		log:   zap.NewNop(),
		e:     e,
		theme: DefaultTheme(),
		dirty: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if d := h.Display(); d != nil {
		s.fb = d.Framebuffer()
	}
	if s.fb == nil {
		return nil, ErrNoFramebuffer
	}
	s.d = newFBDisplay(s.fb)
	s.layout = newLayout(s.fb.Width(), s.fb.Height())

	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.keys = kbd.Events()
		}
		if p := in.Pointer(); p != nil {
			s.ptr = p.Events()
		}
	}
	if t := h.Time(); t != nil {
		s.ticks = t.Ticks()
	}

	s.total = e.Total()
	s.current = e.Current()
	e.Observe(s.changed)
	return s, nil
}

func (s *Screen) changed(f engine.Field) {
	if f&engine.FieldTotal != 0 {
		s.total = s.e.Total()
	}
	if f&engine.FieldCurrent != 0 {
		s.current = s.e.Current()
	}
	s.dirty = true
}

// TotalText is the text shown in the upper display.
func (s *Screen) TotalText() string { return keypad.FormatTotal(s.total) }

// CurrentText is the text shown in the main display.
func (s *Screen) CurrentText() string { return s.current }

// SetTheme switches colors; the next Step repaints.
func (s *Screen) SetTheme(t Theme) {
	s.theme = t
	s.dirty = true
}

// Step drains pending input, dispatches it and repaints if anything
// visible changed.
func (s *Screen) Step() error {
	s.drainTicks()
	s.drainKeys()
	s.drainPointer()

	if s.pressed.active && s.now >= s.pressed.until {
		s.pressed.active = false
		s.dirty = true
	}
	if !s.dirty {
		return nil
	}
	s.dirty = false
	return s.render()
}

func (s *Screen) drainTicks() {
	for {
		select {
		case seq := <-s.ticks:
			if seq > s.now {
				s.now = seq
			}
		default:
			return
		}
	}
}

func (s *Screen) drainKeys() {
	for {
		select {
		case ev := <-s.keys:
			s.handleKey(ev)
		default:
			return
		}
	}
}

func (s *Screen) drainPointer() {
	for {
		select {
		case ev := <-s.ptr:
			if !ev.Press {
				continue
			}
			if k, ok := s.KeyAt(ev.X, ev.Y); ok {
				s.Press(k)
			}
		default:
			return
		}
	}
}

func (s *Screen) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	var (
		k  keypad.Key
		ok bool
	)
	if ev.Code != hal.KeyUnknown {
		k, ok = keypad.LookupName(ev.Code.String())
	} else {
		k, ok = keypad.Lookup(ev.Rune)
	}
	if !ok {
		s.log.Debug("unbound key", zap.Stringer("code", ev.Code), zap.String("rune", string(ev.Rune)))
		return
	}
	s.Press(k)
}

// KeyAt returns the key under framebuffer point (x, y).
func (s *Screen) KeyAt(x, y int) (keypad.Key, bool) {
	row, col, ok := s.layout.cellAt(x, y)
	if !ok {
		return keypad.Key{}, false
	}
	return keypad.At(row, col)
}

// Press dispatches k to the engine and highlights it.
func (s *Screen) Press(k keypad.Key) {
	wasError := s.e.InError()
	keypad.Apply(s.e, k)

	if s.ticks != nil {
		s.pressed = highlight{id: k.ID, until: s.now + pressTicks, active: true}
		s.dirty = true
	}

	s.log.Debug("key",
		zap.String("label", k.Label),
		zap.String("total", s.e.Total()),
		zap.String("current", s.e.Current()),
		zap.Stringer("last", s.e.LastAdded()),
	)
	if !wasError && s.e.InError() {
		s.log.Info("evaluation failed", zap.String("total", s.e.Total()), zap.Error(s.e.Err()))
	}
}

func (s *Screen) render() error {
	l := s.layout
	_ = s.d.FillRectangle(0, 0, int16(l.width), int16(l.height), s.theme.Display)

	s.drawRight(l.total, s.TotalText(), totalScale)
	s.drawRight(l.current, s.current, currentScale(s.current, l.current.w))

	for _, k := range keypad.Keys() {
		r := l.keyRect(k)
		if r.empty() {
			continue
		}
		pressed := s.pressed.active && s.pressed.id == k.ID
		_ = s.d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), s.theme.KeyColor(k.Style, pressed))
		s.drawCentered(r, k.Label, labelScale)
	}
	return s.fb.Present()
}

// currentScale picks the largest text scale that fits width, down to
// currentMin.
func currentScale(text string, width int) int {
	n := len([]rune(text))
	for scale := currentMax; scale > currentMin; scale-- {
		if n*glyph6x8.Width*scale <= width {
			return scale
		}
	}
	return currentMin
}

// drawRight draws text right-aligned and vertically centered in r. Runes
// that do not fit are dropped from the left.
func (s *Screen) drawRight(r rect, text string, scale int) {
	rs := []rune(text)
	if fit := r.w / (glyph6x8.Width * scale); len(rs) > fit {
		rs = rs[len(rs)-max(fit, 0):]
	}
	if len(rs) == 0 {
		return
	}
	str := string(rs)
	_, w := tinyfont.LineWidth(glyph6x8.Font, str)
	x := r.x + r.w - int(w)*scale
	y := r.y + (r.h-glyph6x8.Height*scale)/2
	s.writeLine(r, x, y, str, scale, s.theme.Label)
}

func (s *Screen) drawCentered(r rect, text string, scale int) {
	_, w := tinyfont.LineWidth(glyph6x8.Font, text)
	x := r.x + (r.w-int(w)*scale)/2
	y := r.y + (r.h-glyph6x8.Height*scale)/2
	s.writeLine(r, x, y, text, scale, s.theme.Label)
}

func (s *Screen) writeLine(clip rect, x, y int, text string, scale int, c color.RGBA) {
	sd := &scaledDisplay{
		dst:   s.d,
		scale: int16(scale),
		ox:    int16(x),
		oy:    int16(y),
		clip:  clip,
	}
	tinyfont.WriteLine(sd, glyph6x8.Font, 0, glyph6x8.Baseline, text, c)
}
