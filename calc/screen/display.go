package screen

import (
	"image/color"

	"calc/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts an RGB565 framebuffer to drivers.Displayer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// scaledDisplay magnifies everything drawn through it by an integer factor
// and discards pixels that fall outside its clip rectangle. Coordinates
// passed to it are relative to origin, in unscaled units.
type scaledDisplay struct {
	dst   *fbDisplay
	scale int16
	ox    int16
	oy    int16
	clip  rect
}

func (s *scaledDisplay) Size() (x, y int16) {
	return int16(s.clip.w) / s.scale, int16(s.clip.h) / s.scale
}

func (s *scaledDisplay) SetPixel(x, y int16, c color.RGBA) {
	px := s.ox + x*s.scale
	py := s.oy + y*s.scale
	r := rect{x: int(px), y: int(py), w: int(s.scale), h: int(s.scale)}.intersect(s.clip)
	if r.empty() {
		return
	}
	_ = s.dst.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), c)
}

func (s *scaledDisplay) Display() error { return nil }

func (s *scaledDisplay) SetRotation(drivers.Rotation) error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
