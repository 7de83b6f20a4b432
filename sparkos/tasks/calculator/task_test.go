package calculator

import (
	"strconv"
	"testing"
	"time"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

func newTestTask() *Task {
	tk := New(nil, kernel.Capability{}, kernel.Capability{}, Config{Theme: DefaultTheme()})
	tk.kp.layout(rect{x: 0, y: 120, w: 320, h: 200}, keyGap)
	return tk
}

func (t *Task) click(label string) {
	b := t.kp.buttons[t.kp.find(label)]
	x, y := b.r.x+b.r.w/2, b.r.y+b.r.h/2
	t.handlePointer(nil, x, y, true)
	t.handlePointer(nil, x, y, false)
}

func TestKeyboardInput(t *testing.T) {
	tk := newTestTask()
	tk.handleInput(nil, []byte("12+3\n"))
	if tk.display != "15" {
		t.Fatalf("display = %q, want 15", tk.display)
	}
	if len(tk.lines) != 1 || tk.lines[0] != "12 + 3 = 15" {
		t.Fatalf("lines = %q", tk.lines)
	}

	tk.handleInput(nil, []byte("5/0="))
	if tk.display != calc.ErrorText {
		t.Fatalf("display = %q, want Error", tk.display)
	}
	tk.handleInput(nil, []byte{0x1b})
	if tk.display != "0" {
		t.Fatalf("escape should clear, display = %q", tk.display)
	}
	if len(tk.lines) != 1 {
		t.Fatalf("clear must keep history, got %d lines", len(tk.lines))
	}
}

func TestBackspaceKey(t *testing.T) {
	tk := newTestTask()
	tk.handleInput(nil, []byte("123\x7f"))
	if tk.display != "12" {
		t.Fatalf("display = %q", tk.display)
	}
	tk.handleInput(nil, []byte("\x7f\x7f\x7f"))
	if tk.display != "0" {
		t.Fatalf("display = %q", tk.display)
	}
}

func TestSplitEscapeSequence(t *testing.T) {
	tk := newTestTask()
	start := tk.focus
	tk.handleInput(nil, []byte("\x1b["))
	if tk.focus != start {
		t.Fatal("focus moved on an incomplete sequence")
	}
	tk.handleInput(nil, []byte("D"))
	if got := tk.kp.buttons[tk.focus].label; got != "3" {
		t.Fatalf("focus = %q, want 3", got)
	}
	tk.handleInput(nil, []byte(" "))
	if tk.display != "3" {
		t.Fatalf("space should press the focused button, display = %q", tk.display)
	}
}

func TestFocusNavigation(t *testing.T) {
	tk := newTestTask()
	// "=" up to "+", left three times to "4", then up to "7".
	tk.handleInput(nil, []byte("\x1b[A\x1b[D\x1b[D\x1b[D\x1b[A"))
	if got := tk.kp.buttons[tk.focus].label; got != "7" {
		t.Fatalf("focus = %q, want 7", got)
	}
}

func TestPointerInput(t *testing.T) {
	tk := newTestTask()
	tk.click("7")
	tk.click("*")
	tk.click("6")
	tk.click("=")
	if tk.display != "42" {
		t.Fatalf("display = %q, want 42", tk.display)
	}
	if tk.kp.buttons[tk.focus].label != "=" {
		t.Fatal("click should move focus to the clicked button")
	}

	tk.click("<-")
	if tk.display != "4" {
		t.Fatalf("backspace button: display = %q, want 4", tk.display)
	}
	tk.click("C")
	if tk.display != "0" {
		t.Fatalf("clear button: display = %q", tk.display)
	}
}

func TestPointerReleaseElsewhereCancels(t *testing.T) {
	tk := newTestTask()
	seven := tk.kp.buttons[tk.kp.find("7")]
	eight := tk.kp.buttons[tk.kp.find("8")]

	tk.handlePointer(nil, seven.r.x+2, seven.r.y+2, true)
	if tk.pressed != tk.kp.find("7") {
		t.Fatal("expected 7 to be held")
	}
	tk.handlePointer(nil, eight.r.x+2, eight.r.y+2, false)
	if tk.display != "0" {
		t.Fatalf("release on another button must not press, display = %q", tk.display)
	}
	if tk.pressed != -1 {
		t.Fatal("release must clear the held button")
	}
}

func TestHistoryLinesMatchCalculator(t *testing.T) {
	tk := newTestTask()
	for i := 1; i <= 11; i++ {
		tk.handleInput(nil, []byte("1+"+strconv.Itoa(i)+"="))
	}
	recs := tk.calc.History()
	if len(tk.lines) != calc.HistoryLimit || len(recs) != calc.HistoryLimit {
		t.Fatalf("got %d lines and %d records", len(tk.lines), len(recs))
	}
	for i, r := range recs {
		if tk.lines[i] != r.String() {
			t.Fatalf("line %d = %q, want %q", i, tk.lines[i], r.String())
		}
	}
	if tk.lines[0] != "1 + 11 = 12" {
		t.Fatalf("newest line = %q", tk.lines[0])
	}
}

func TestClipColumns(t *testing.T) {
	if got := clipColumns("12 + 3 = 15", 20); got != "12 + 3 = 15" {
		t.Fatalf("got %q", got)
	}
	if got := clipColumns("123456789", 6); got != "1234.." {
		t.Fatalf("got %q", got)
	}
}

// testFB is an in-memory RGB565 framebuffer.
type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  {}
func (f *testFB) Present() error          { f.presents++; return nil }

func (f *testFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// countPixels counts pixels of color c inside r.
func (f *testFB) countPixels(r rect, c uint16) int {
	n := 0
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			if f.pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

type testDisplay struct{ fb *testFB }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func TestRender(t *testing.T) {
	fb := newTestFB(hal.ScreenWidth, hal.ScreenHeight)
	th := DefaultTheme()
	tk := New(testDisplay{fb: fb}, kernel.Capability{}, kernel.Capability{}, Config{Theme: th})
	tk.fb = fb
	tk.d = newFBDisplay(fb)
	tk.view = newView(tk.d, fb.w, fb.h)
	tk.kp.layout(tk.view.keypad, keyGap)

	tk.render()
	if fb.presents != 1 {
		t.Fatalf("first render should present once, got %d", fb.presents)
	}
	text := hal.RGB565(th.DisplayText.R, th.DisplayText.G, th.DisplayText.B)
	if fb.countPixels(tk.view.display, text) == 0 {
		t.Fatal("display text not drawn")
	}
	focus := hal.RGB565(th.Focus.R, th.Focus.G, th.Focus.B)
	if fb.countPixels(tk.view.keypad, focus) == 0 {
		t.Fatal("focus ring not drawn")
	}

	bg := hal.RGB565(terminalBG.R, terminalBG.G, terminalBG.B)
	emptyHist := tk.view.history.w*tk.view.history.h - fb.countPixels(tk.view.history, bg)

	tk.handleInput(nil, []byte("2+3="))
	tk.render()
	if tk.dirty != 0 {
		t.Fatal("render must clear dirty flags")
	}
	if fb.presents != 3 {
		t.Fatalf("expected display and history presents, got %d total", fb.presents)
	}
	filledHist := tk.view.history.w*tk.view.history.h - fb.countPixels(tk.view.history, bg)
	if filledHist <= emptyHist {
		t.Fatalf("history record not drawn (%d <= %d)", filledHist, emptyHist)
	}
}

func TestRenderFullHistoryFitsPanel(t *testing.T) {
	fb := newTestFB(hal.ScreenWidth, hal.ScreenHeight)
	tk := New(testDisplay{fb: fb}, kernel.Capability{}, kernel.Capability{}, Config{Theme: DefaultTheme()})
	tk.fb = fb
	tk.d = newFBDisplay(fb)
	tk.view = newView(tk.d, fb.w, fb.h)
	tk.kp.layout(tk.view.keypad, keyGap)

	if rows := tk.view.history.h / historyLineH; rows < calc.HistoryLimit+1 {
		t.Fatalf("history panel has %d rows, need %d", rows, calc.HistoryLimit+1)
	}

	for i := 0; i <= calc.HistoryLimit; i++ {
		tk.handleInput(nil, []byte("1+"+strconv.Itoa(i)+"="))
	}
	tk.render()

	bg := hal.RGB565(terminalBG.R, terminalBG.G, terminalBG.B)
	h := tk.view.history
	header := rect{x: h.x, y: h.y, w: h.w, h: historyLineH}
	last := rect{x: h.x, y: h.y + calc.HistoryLimit*historyLineH, w: h.w, h: historyLineH}
	if fb.countPixels(header, bg) == header.w*header.h {
		t.Fatal("header overwritten")
	}
	if fb.countPixels(last, bg) == last.w*last.h {
		t.Fatal("oldest record not drawn on the last row")
	}
}

// collector forwards every message received on ep to out.
type collector struct {
	ep  kernel.Capability
	out chan kernel.Message
}

func (p collector) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(p.ep)
	if !ok {
		return
	}
	for msg := range ch {
		p.out <- msg
	}
}

// feeder sends one message and exits.
type feeder struct {
	to   kernel.Capability
	kind proto.Kind
	data []byte
}

func (f feeder) Run(ctx *kernel.Context) {
	ctx.SendTo(f.to, uint16(f.kind), f.data)
}

func TestTaskPublishesResults(t *testing.T) {
	k := kernel.New()
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	obsEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	obs := make(chan kernel.Message, 4)
	logs := make(chan kernel.Message, 4)
	k.AddTask(collector{ep: obsEP.Restrict(kernel.RightRecv), out: obs})
	k.AddTask(collector{ep: logEP.Restrict(kernel.RightRecv), out: logs})
	k.AddTask(New(nil, calcEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), Config{
		Theme:    DefaultTheme(),
		Observer: obsEP.Restrict(kernel.RightSend),
	}))
	k.AddTask(feeder{to: calcEP.Restrict(kernel.RightSend), kind: proto.MsgTermInput, data: []byte("2+3=9/0=")})

	wait := func(ch chan kernel.Message) kernel.Message {
		t.Helper()
		select {
		case msg := <-ch:
			return msg
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
			return kernel.Message{}
		}
	}

	msg := wait(obs)
	if proto.Kind(msg.Kind) != proto.MsgCalcResult {
		t.Fatalf("expected calc result, got %s", proto.Kind(msg.Kind))
	}
	expr, result, ok := proto.DecodeCalcResultPayload(msg.Payload())
	if !ok || expr != "2 + 3" || result != "5" {
		t.Fatalf("got %q %q %v", expr, result, ok)
	}

	msg = wait(obs)
	code, ref, _, ok := proto.DecodeErrorPayload(msg.Payload())
	if proto.Kind(msg.Kind) != proto.MsgError || !ok || code != proto.ErrDivideByZero || ref != proto.MsgCalcResult {
		t.Fatalf("unexpected error message kind=%s code=%s", proto.Kind(msg.Kind), code)
	}

	for _, want := range []string{"calc: 2 + 3 = 5", "calc: division by zero"} {
		m := wait(logs)
		if line := string(m.Payload()); line != want {
			t.Fatalf("log line = %q, want %q", line, want)
		}
	}
}
