package hal

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// Snapshot copies an RGB565 framebuffer into an RGBA image.
func Snapshot(fb Framebuffer) (*image.RGBA, error) {
	if fb == nil {
		return nil, fmt.Errorf("snapshot: %w: no framebuffer", ErrNotImplemented)
	}
	if fb.Format() != PixelFormatRGB565 {
		return nil, fmt.Errorf("snapshot: unsupported pixel format %d", fb.Format())
	}

	w, h := fb.Width(), fb.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	src := fb.Buffer()
	stride := fb.StrideBytes()
	for y := 0; y < h; y++ {
		row := src[y*stride : y*stride+w*2]
		expandRGB565(img.Pix[y*img.Stride:y*img.Stride+w*4], row)
	}
	return img, nil
}

// WritePNG encodes the framebuffer contents as PNG.
func WritePNG(w io.Writer, fb Framebuffer) error {
	img, err := Snapshot(fb)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("snapshot: encode png: %w", err)
	}
	return nil
}
