package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
)

func (c KeyCode) String() string {
	switch c {
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	default:
		return ""
	}
}

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown
// and the typed character in Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerEvent is a mouse button or touch transition in framebuffer
// coordinates.
type PointerEvent struct {
	X     int
	Y     int
	Press bool
}

// Pointer provides mouse/touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream.
//
// On the host one tick is one millisecond of wall time.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the calculator and the
// outside world.
type HAL interface {
	Display() Display
	Input() Input
	Time() Time
}
