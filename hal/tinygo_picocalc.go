//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
	"time"
)

// Screen size of the PicoCalc panel.
const (
	ScreenWidth  = 320
	ScreenHeight = 320
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	fb := newPicoCalcFramebuffer()
	if lcd, err := initILI9488(); err == nil {
		fb.lcd = lcd
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
	}

	var kbd Keyboard = nullKeyboard{}
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		logger.WriteLineString("hal: " + err.Error())
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time       { return h.t }

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd *ili9488
}

func newPicoCalcFramebuffer() *picoCalcFramebuffer {
	return &picoCalcFramebuffer{
		w:      ScreenWidth,
		h:      ScreenHeight,
		stride: ScreenWidth * 2,
		buf:    make([]byte, ScreenWidth*ScreenHeight*2),
	}
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, r, g, b)
}

func (f *picoCalcFramebuffer) Present() error {
	return f.PresentRect(0, 0, f.w, f.h)
}

// PresentRect pushes full rows covering the rectangle; the panel window is row-aligned.
func (f *picoCalcFramebuffer) PresentRect(x, y, w, h int) error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	_, _ = x, w
	y0 := clampRow(y, f.h)
	y1 := clampRow(y+h, f.h)
	if y0 >= y1 {
		return nil
	}
	return f.lcd.blitRows(f.buf[y0*f.stride:y1*f.stride], f.w, y0, y1)
}

func clampRow(v, h int) int {
	if v < 0 {
		return 0
	}
	if v > h {
		return h
	}
	return v
}

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}

	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return dev, nil
}
