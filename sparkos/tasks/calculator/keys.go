package calculator

import "unicode/utf8"

type keyKind uint8

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyEsc
	keyUp
	keyDown
	keyLeft
	keyRight
	keyDelete
	keyIgnored
)

type key struct {
	kind keyKind
	r    rune
}

// nextKey decodes one key from VT100 input bytes.
//
// ok is false when b holds an incomplete sequence that needs more bytes.
func nextKey(b []byte) (consumed int, k key, ok bool) {
	if len(b) == 0 {
		return 0, key{}, false
	}

	if b[0] == 0x1b {
		return parseEscapeKey(b)
	}

	switch b[0] {
	case '\r', '\n':
		return 1, key{kind: keyEnter}, true
	case 0x7f, 0x08:
		return 1, key{kind: keyBackspace}, true
	}

	if b[0] < 0x20 {
		return 1, key{kind: keyIgnored}, true
	}
	if !utf8.FullRune(b) {
		return 0, key{}, false
	}
	r, sz := utf8.DecodeRune(b)
	if r == utf8.RuneError && sz == 1 {
		return 1, key{kind: keyIgnored}, true
	}
	return sz, key{kind: keyRune, r: r}, true
}

func parseEscapeKey(b []byte) (consumed int, k key, ok bool) {
	if len(b) < 2 || b[1] != '[' {
		return 1, key{kind: keyEsc}, true
	}
	if len(b) < 3 {
		return 0, key{}, false
	}

	switch b[2] {
	case 'A':
		return 3, key{kind: keyUp}, true
	case 'B':
		return 3, key{kind: keyDown}, true
	case 'C':
		return 3, key{kind: keyRight}, true
	case 'D':
		return 3, key{kind: keyLeft}, true
	case '3':
		if len(b) < 4 {
			return 0, key{}, false
		}
		if b[3] == '~' {
			return 4, key{kind: keyDelete}, true
		}
	}
	// Unknown CSI: drop the introducer so the rest is read as plain keys.
	return 2, key{kind: keyIgnored}, true
}

// keyName maps a decoded key to the key names calc.KeyIntent understands.
func keyName(k key) string {
	switch k.kind {
	case keyRune:
		return string(k.r)
	case keyEnter:
		return "Enter"
	case keyBackspace:
		return "Backspace"
	case keyEsc:
		return "Escape"
	default:
		return ""
	}
}
