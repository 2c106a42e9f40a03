//go:build cgo

package hal

import (
	"image"

	"calc/internal/buildinfo"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Host      HostConfig
	Title     string
	Scale     int
	TPS       int
	Resizable bool
}

// RunWindow starts a desktop window that displays the framebuffer and
// forwards keyboard and pointer input. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) (func() error, error)) error {
	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "Calculator"
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSizeLimits(h.fb.width, h.fb.height, -1, -1)
	}
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	sum     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.sum = 0
	}

	fb.snapshotRGB565(g.scratch)

	// Upload only when the framebuffer changed since the last frame.
	if sum := xxhash.Sum64(g.scratch); sum != g.sum || g.sum == 0 {
		g.sum = sum
		expandRGB565(g.img.Pix, g.scratch)
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
