//go:build !tinygo

package hal

import (
	"bytes"
	"image/png"
	"testing"
)

func TestWritePNG(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(0xFF, 0, 0)

	var buf bytes.Buffer
	if err := WritePNG(&buf, fb); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 0xFF || g != 0 || b != 0 {
		t.Fatalf("expected red pixel, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestWritePNGNil(t *testing.T) {
	if err := WritePNG(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error for nil framebuffer")
	}
}

func TestPixelRoundTrip(t *testing.T) {
	cases := [][3]uint8{{0, 0, 0}, {0xFF, 0xFF, 0xFF}, {0xFF, 0, 0}, {0, 0xFF, 0}, {0, 0, 0xFF}}
	for _, c := range cases {
		r, g, b := RGB888From565(RGB565(c[0], c[1], c[2]))
		if r != c[0] || g != c[1] || b != c[2] {
			t.Fatalf("round trip %v -> %d %d %d", c, r, g, b)
		}
	}
}

func TestPresentRectFallsBack(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	if err := PresentRect(fb, 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := PresentRect(Framebuffer(plainFB{fb}), 0, 0, 1, 1); err != nil {
		t.Fatal(err)
	}
	if n := fb.presentCount(); n != 2 {
		t.Fatalf("expected 2 presents, got %d", n)
	}
}

// plainFB hides PresentRect.
type plainFB struct{ f *hostFramebuffer }

func (p plainFB) Width() int             { return p.f.Width() }
func (p plainFB) Height() int            { return p.f.Height() }
func (p plainFB) Format() PixelFormat    { return p.f.Format() }
func (p plainFB) StrideBytes() int       { return p.f.StrideBytes() }
func (p plainFB) Buffer() []byte         { return p.f.Buffer() }
func (p plainFB) ClearRGB(r, g, b uint8) { p.f.ClearRGB(r, g, b) }
func (p plainFB) Present() error         { return p.f.Present() }
