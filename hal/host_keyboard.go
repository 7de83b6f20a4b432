//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hostSpecialKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyDelete, KeyDelete},
}

// poll translates this frame's ebiten key state into events.
//
// Printable characters (digits, operators, '=', '.') come from the text input stream,
// so keyboard layout and numpad both work.
func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, sk := range hostSpecialKeys {
		if inpututil.IsKeyJustPressed(sk.key) {
			k.emit(KeyEvent{Code: sk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(sk.key) {
			k.emit(KeyEvent{Code: sk.code, Press: false})
		}
	}
}
