package calculator

import (
	"image/color"

	"sparkcalc/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts a RGB565 framebuffer to drivers.Displayer.
type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

// regionDisplay exposes a clipped sub-rectangle of a display with its own origin.
//
// The history terminal draws through it so it cannot touch the rest of the screen.
type regionDisplay struct {
	base *fbDisplay
	r    rect
}

func (d *regionDisplay) Size() (x, y int16) {
	return int16(d.r.w), int16(d.r.h)
}

func (d *regionDisplay) SetPixel(x, y int16, c color.RGBA) {
	if int(x) < 0 || int(x) >= d.r.w || int(y) < 0 || int(y) >= d.r.h {
		return
	}
	d.base.SetPixel(int16(d.r.x)+x, int16(d.r.y)+y, c)
}

// Display is a no-op; the task presents the framebuffer itself.
func (d *regionDisplay) Display() error { return nil }

func (d *regionDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, d.r.w)
	y0 := clampInt(int(y), 0, d.r.h)
	x1 := clampInt(int(x)+int(width), 0, d.r.w)
	y1 := clampInt(int(y)+int(height), 0, d.r.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	return d.base.FillRectangle(int16(d.r.x+x0), int16(d.r.y+y0), int16(x1-x0), int16(y1-y0), c)
}

func (d *regionDisplay) SetScroll(line int16) {}

func (d *regionDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
