package hal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ScriptEvent is one scripted input event.
type ScriptEvent struct {
	Pointer   bool
	Key       KeyEvent
	PointerEv PointerEvent
}

var scriptKeys = map[string]KeyCode{
	"enter": KeyEnter,
	"esc":   KeyEscape,
	"bs":    KeyBackspace,
	"del":   KeyDelete,
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
}

// ParseScript parses a typed input script.
//
// Plain characters are typed as-is and a newline presses Enter. Braced tags name special
// keys ({enter} {esc} {bs} {del} {up} {down} {left} {right}) or click a framebuffer
// position ({click X,Y}). Special keys and clicks produce a press and a release.
func ParseScript(s string) ([]ScriptEvent, error) {
	var out []ScriptEvent
	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '\n':
			out = appendKey(out, KeyEnter)
			i++
			continue
		case '\r':
			i++
			continue
		case '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("script: unterminated tag at offset %d", i)
			}
			tag := s[i+1 : i+end]
			ev, err := parseScriptTag(tag)
			if err != nil {
				return nil, fmt.Errorf("script: offset %d: %w", i, err)
			}
			out = append(out, ev...)
			i += end + 1
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		out = append(out, ScriptEvent{Key: KeyEvent{Press: true, Rune: r}})
		i += size
	}
	return out, nil
}

func appendKey(out []ScriptEvent, code KeyCode) []ScriptEvent {
	return append(out,
		ScriptEvent{Key: KeyEvent{Code: code, Press: true}},
		ScriptEvent{Key: KeyEvent{Code: code, Press: false}},
	)
}

func parseScriptTag(tag string) ([]ScriptEvent, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(tag), " ")
	if code, ok := scriptKeys[name]; ok && arg == "" {
		return appendKey(nil, code), nil
	}
	if name != "click" {
		return nil, fmt.Errorf("unknown tag %q", tag)
	}

	xs, ys, ok := strings.Cut(strings.TrimSpace(arg), ",")
	if !ok {
		return nil, fmt.Errorf("click wants X,Y, got %q", arg)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil, fmt.Errorf("click x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil, fmt.Errorf("click y: %w", err)
	}
	return []ScriptEvent{
		{Pointer: true, PointerEv: PointerEvent{X: x, Y: y, Press: true}},
		{Pointer: true, PointerEv: PointerEvent{X: x, Y: y, Press: false}},
	}, nil
}
