//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

var namedKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyDelete, KeyDelete},
}

func (k *hostKeyboard) poll() {
	// Typed characters, including the numpad, arrive as text input.
	for _, r := range ebiten.AppendInputChars(nil) {
		k.inject(KeyEvent{Press: true, Rune: r})
	}

	for _, nk := range namedKeys {
		if inpututil.IsKeyJustPressed(nk.key) {
			k.inject(KeyEvent{Code: nk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(nk.key) {
			k.inject(KeyEvent{Code: nk.code, Press: false})
		}
	}
}
