package hal

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// Image converts an RGB565 framebuffer into an RGBA image.
func Image(fb Framebuffer) (*image.RGBA, error) {
	if fb == nil {
		return nil, fmt.Errorf("snapshot: nil framebuffer")
	}
	if fb.Format() != PixelFormatRGB565 {
		return nil, fmt.Errorf("snapshot: unsupported pixel format %d", fb.Format())
	}
	w, h := fb.Width(), fb.Height()
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	if w <= 0 || h <= 0 || len(buf) < (h-1)*stride+w*2 {
		return nil, fmt.Errorf("snapshot: framebuffer too small")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := buf[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			r, g, b := RGB888From565(uint16(row[x*2]) | uint16(row[x*2+1])<<8)
			dst[x*4+0] = r
			dst[x*4+1] = g
			dst[x*4+2] = b
			dst[x*4+3] = 0xFF
		}
	}
	return img, nil
}

// WritePNG encodes the framebuffer contents as PNG.
func WritePNG(w io.Writer, fb Framebuffer) error {
	img, err := Image(fb)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}
