package calculator

import (
	"image/color"
	"strings"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	displayHeight = 44
	historyLineH  = 10
	historyOffset = 6
	keyGap        = 4
	margin        = 6
)

// terminalBG is the terminal's default background; its cells repaint with it.
var terminalBG = color.RGBA{A: 0xFF}

// face is a font plus the metrics needed to place it.
type face struct {
	font   tinyfont.Fonter
	ascent int16
}

var (
	faceDisplay      = face{font: &freemono.Bold18pt7b, ascent: 20}
	faceDisplaySmall = face{font: &freemono.Bold12pt7b, ascent: 14}
	faceButton       = face{font: &freemono.Bold12pt7b, ascent: 14}
)

// view holds the screen regions and the history terminal.
type view struct {
	d *fbDisplay

	display rect
	history rect
	keypad  rect

	histDisp *regionDisplay
	term     *tinyterm.Terminal
	histCols int
}

func newView(d *fbDisplay, w, h int) *view {
	histH := historyLineH * (calc.HistoryLimit + 1)
	v := &view{
		d:       d,
		display: rect{x: 0, y: 0, w: w, h: displayHeight},
		history: rect{x: 0, y: displayHeight, w: w, h: histH},
		keypad:  rect{x: 0, y: displayHeight + histH, w: w, h: h - displayHeight - histH},
	}
	v.histDisp = &regionDisplay{base: d, r: v.history}
	v.term = tinyterm.NewTerminal(v.histDisp)
	_, cw := tinyfont.LineWidth(&proggy.TinySZ8pt7b, "0")
	if cw > 0 {
		v.histCols = w / int(cw)
	}
	return v
}

func (t *Task) render() {
	if t.view == nil || t.dirty == 0 {
		t.dirty = 0
		return
	}
	dirty := t.dirty
	t.dirty = 0

	if dirty == dirtyAll {
		_ = t.d.FillRectangle(0, 0, int16(t.fb.Width()), int16(t.fb.Height()), t.cfg.Theme.Background)
	}
	if dirty&dirtyDisplay != 0 {
		t.renderDisplay()
	}
	if dirty&dirtyHistory != 0 {
		t.renderHistory()
	}
	if dirty&dirtyKeypad != 0 {
		t.renderKeypad()
	}

	if dirty == dirtyAll {
		_ = t.fb.Present()
		return
	}
	v := t.view
	for _, part := range []struct {
		flag dirtyFlags
		r    rect
	}{
		{dirtyDisplay, v.display},
		{dirtyHistory, v.history},
		{dirtyKeypad, v.keypad},
	} {
		if dirty&part.flag != 0 {
			_ = hal.PresentRect(t.fb, part.r.x, part.r.y, part.r.w, part.r.h)
		}
	}
}

func (t *Task) renderDisplay() {
	r := t.view.display
	th := t.cfg.Theme
	_ = t.d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), th.DisplayBG)

	f := faceDisplay
	_, w := tinyfont.LineWidth(f.font, t.display)
	if int(w) > r.w-2*margin {
		f = faceDisplaySmall
		_, w = tinyfont.LineWidth(f.font, t.display)
	}
	x := r.x + r.w - margin - int(w)
	if x < r.x+margin {
		x = r.x + margin
	}
	y := r.y + (r.h+int(f.ascent))/2
	tinyfont.WriteLine(t.d, f.font, int16(x), int16(y), t.display, th.DisplayText)
}

// renderHistory redraws the history panel through the terminal, newest first.
func (t *Task) renderHistory() {
	v := t.view
	_ = v.histDisp.FillRectangle(0, 0, int16(v.history.w), int16(v.history.h), terminalBG)

	// The panel holds the header plus a full history, so the terminal never scrolls.
	v.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: historyLineH,
		FontOffset: historyOffset,
	})

	var sb strings.Builder
	sb.WriteString("\x1b[36mHistory\x1b[0m")
	for _, line := range t.lines {
		sb.WriteString("\r\n")
		sb.WriteString(clipColumns(line, v.histCols))
	}
	v.term.Write([]byte(sb.String()))
}

func (t *Task) renderKeypad() {
	r := t.view.keypad
	th := t.cfg.Theme
	_ = t.d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), th.Background)

	for i := range t.kp.buttons {
		b := &t.kp.buttons[i]
		bg := buttonColor(th, b.class)
		if i == t.pressed {
			bg = th.Pressed
		}
		if i == t.focus {
			_ = t.d.FillRectangle(int16(b.r.x-2), int16(b.r.y-2), int16(b.r.w+4), int16(b.r.h+4), th.Focus)
		}
		_ = t.d.FillRectangle(int16(b.r.x), int16(b.r.y), int16(b.r.w), int16(b.r.h), bg)

		_, w := tinyfont.LineWidth(faceButton.font, b.label)
		x := b.r.x + (b.r.w-int(w))/2
		y := b.r.y + (b.r.h+int(faceButton.ascent))/2
		tinyfont.WriteLine(t.d, faceButton.font, int16(x), int16(y), b.label, th.ButtonText)
	}
}

func buttonColor(th Theme, class calc.ButtonClass) color.RGBA {
	switch class {
	case calc.ButtonOperator:
		return th.Operator
	case calc.ButtonEqual:
		return th.Equal
	case calc.ButtonClear, calc.ButtonBackspace:
		return th.Clear
	default:
		return th.Button
	}
}

// clipColumns keeps the terminal from wrapping a line onto the next row.
func clipColumns(s string, cols int) string {
	if cols <= 0 || len(s) <= cols {
		return s
	}
	if cols <= 2 {
		return s[:cols]
	}
	return s[:cols-2] + ".."
}
