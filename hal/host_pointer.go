//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch      chan PointerEvent
	touches []ebiten.TouchID
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

// poll must run inside ebiten's Update; cursor and touch positions are
// already in framebuffer coordinates because Layout returns its size.
func (p *hostPointer) poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.inject(PointerEvent{X: x, Y: y, Press: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.inject(PointerEvent{X: x, Y: y, Press: false})
	}

	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := ebiten.TouchPosition(id)
		p.inject(PointerEvent{X: x, Y: y, Press: true})
	}
	p.touches = inpututil.AppendJustReleasedTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.inject(PointerEvent{X: x, Y: y, Press: false})
	}
}
