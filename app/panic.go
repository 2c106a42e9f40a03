package app

import (
	"errors"
	"fmt"
	"image/color"

	"calc/calc/engine"
	"calc/calc/fonts/glyph6x8"
	"calc/hal"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
)

var ErrPanic = errors.New("calculator panic")

// guard wraps step so that a panic is logged, painted on the framebuffer
// and returned as an error, which stops the host runner.
func guard(h hal.HAL, log *zap.Logger, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			log.Error("panic in step", zap.Any("panic", v), zap.Stack("stack"))
			paintPanic(h)
			err = fmt.Errorf("%w: %v", ErrPanic, v)
		}()
		return step()
	}
}

func paintPanic(h hal.HAL) {
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}

	fb.ClearRGB(0xFF, 0x5F, 0x7C)

	const scale = 4
	d := panicDisplay{fb: fb, scale: scale}
	_, w := tinyfont.LineWidth(glyph6x8.Font, engine.ErrorText)
	x := (fb.Width()/scale - int(w)) / 2
	y := (fb.Height()/scale-glyph6x8.Height)/2 + glyph6x8.Baseline
	tinyfont.WriteLine(d, glyph6x8.Font, int16(x), int16(y), engine.ErrorText, color.RGBA{R: 0x25, G: 0x26, B: 0x5E, A: 0xFF})
	_ = fb.Present()
}

// panicDisplay draws straight into the framebuffer, each font pixel as a
// scale x scale block.
type panicDisplay struct {
	fb    hal.Framebuffer
	scale int
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width() / d.scale), int16(d.fb.Height() / d.scale)
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	pixel := hal.RGB565(c.R, c.G, c.B)
	stride := d.fb.StrideBytes()
	for dy := 0; dy < d.scale; dy++ {
		for dx := 0; dx < d.scale; dx++ {
			ix := int(x)*d.scale + dx
			iy := int(y)*d.scale + dy
			if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
				continue
			}
			off := iy*stride + ix*2
			buf[off] = byte(pixel)
			buf[off+1] = byte(pixel >> 8)
		}
	}
}

func (d panicDisplay) Display() error { return nil }
