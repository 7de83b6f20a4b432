package calculator

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Config holds optional task settings.
type Config struct {
	Theme Theme

	// Observer, when valid, receives MsgCalcResult for each calculation and
	// MsgError for each division by zero.
	Observer kernel.Capability
}

// Task is the framebuffer calculator app.
//
// It receives MsgTermInput (keyboard bytes) and MsgPointer (clicks) on its endpoint.
type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	calc *calc.Calculator

	// View state fed by the calc.Sink methods.
	display string
	lines   []string

	kp      *keypad
	focus   int
	pressed int

	inbuf []byte

	fb   hal.Framebuffer
	d    *fbDisplay
	view *view

	dirty dirtyFlags
}

type dirtyFlags uint8

const (
	dirtyDisplay dirtyFlags = 1 << iota
	dirtyHistory
	dirtyKeypad

	dirtyAll = dirtyDisplay | dirtyHistory | dirtyKeypad
)

func New(disp hal.Display, ep, logCap kernel.Capability, cfg Config) *Task {
	t := &Task{
		disp:    disp,
		ep:      ep,
		logCap:  logCap,
		cfg:     cfg,
		display: "0",
		kp:      newKeypad(),
		pressed: -1,
		dirty:   dirtyAll,
	}
	t.calc = calc.New(t)
	t.focus = t.kp.find("=")
	return t
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp != nil {
		t.fb = t.disp.Framebuffer()
	}
	if t.fb != nil {
		t.d = newFBDisplay(t.fb)
		t.view = newView(t.d, t.fb.Width(), t.fb.Height())
		t.kp.layout(t.view.keypad, keyGap)
	}
	t.render()

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgTermInput:
			t.handleInput(ctx, msg.Payload())
		case proto.MsgPointer:
			x, y, pressed, ok := proto.DecodePointerPayload(msg.Payload())
			if !ok {
				continue
			}
			t.handlePointer(ctx, x, y, pressed)
		default:
			continue
		}
		t.render()
	}
}

func (t *Task) handleInput(ctx *kernel.Context, b []byte) {
	t.inbuf = append(t.inbuf, b...)
	buf := t.inbuf

	for len(buf) > 0 {
		n, k, ok := nextKey(buf)
		if !ok {
			break
		}
		buf = buf[n:]
		t.handleKey(ctx, k)
	}

	t.inbuf = append(t.inbuf[:0], buf...)
}

func (t *Task) handleKey(ctx *kernel.Context, k key) {
	switch k.kind {
	case keyUp:
		t.moveFocus(-1, 0)
		return
	case keyDown:
		t.moveFocus(1, 0)
		return
	case keyLeft:
		t.moveFocus(0, -1)
		return
	case keyRight:
		t.moveFocus(0, 1)
		return
	case keyRune:
		if k.r == ' ' {
			t.pressButton(ctx, t.focus)
			return
		}
	}

	in, ok := calc.KeyIntent(keyName(k))
	if !ok {
		return
	}
	t.dispatch(ctx, in)
}

func (t *Task) moveFocus(dr, dc int) {
	next := t.kp.move(t.focus, dr, dc)
	if next != t.focus {
		t.focus = next
		t.dirty |= dirtyKeypad
	}
}

// handlePointer presses a button on release over the same button it went down on.
func (t *Task) handlePointer(ctx *kernel.Context, x, y int, down bool) {
	idx := t.kp.hit(x, y)
	if down {
		if idx != t.pressed {
			t.pressed = idx
			t.dirty |= dirtyKeypad
		}
		return
	}

	was := t.pressed
	t.pressed = -1
	if was != -1 {
		t.dirty |= dirtyKeypad
	}
	if idx == -1 || idx != was {
		return
	}
	t.focus = idx
	t.pressButton(ctx, idx)
}

func (t *Task) pressButton(ctx *kernel.Context, idx int) {
	if idx < 0 || idx >= len(t.kp.buttons) {
		return
	}
	in, ok := t.kp.buttons[idx].intent()
	if !ok {
		return
	}
	t.dispatch(ctx, in)
}

func (t *Task) dispatch(ctx *kernel.Context, in calc.Intent) {
	eff := t.calc.Dispatch(in)

	switch {
	case eff.Record != nil:
		rec := *eff.Record
		logclient.Logf(ctx, t.logCap, "calc: %s", rec)
		t.publishResult(ctx, rec)
	case eff.DivByZero:
		logclient.Log(ctx, t.logCap, "calc: division by zero")
		t.publishError(ctx, proto.ErrDivideByZero)
	}
}

func (t *Task) publishResult(ctx *kernel.Context, rec calc.Record) {
	if !t.cfg.Observer.Valid() {
		return
	}
	expr := rec.Expr
	result := calc.FormatNumber(rec.Result)
	if room := kernel.MaxMessageBytes - 2 - len(result); len(expr) > room {
		expr = expr[:room]
	}
	ctx.SendTo(t.cfg.Observer, uint16(proto.MsgCalcResult), proto.CalcResultPayload(expr, result))
}

func (t *Task) publishError(ctx *kernel.Context, code proto.ErrCode) {
	if !t.cfg.Observer.Valid() {
		return
	}
	ctx.SendTo(t.cfg.Observer, uint16(proto.MsgError), proto.ErrorPayload(code, proto.MsgCalcResult, nil))
}

// SetDisplay implements calc.Sink.
func (t *Task) SetDisplay(text string) {
	if text == t.display {
		return
	}
	t.display = text
	t.dirty |= dirtyDisplay
}

// PrependRecord implements calc.Sink.
func (t *Task) PrependRecord(r calc.Record) {
	t.lines = append([]string{r.String()}, t.lines...)
	t.dirty |= dirtyHistory
}

// EvictOldest implements calc.Sink.
func (t *Task) EvictOldest() {
	if len(t.lines) == 0 {
		return
	}
	t.lines = t.lines[:len(t.lines)-1]
	t.dirty |= dirtyHistory
}
