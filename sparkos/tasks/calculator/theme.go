package calculator

import "image/color"

// Theme holds the calculator colors.
type Theme struct {
	Background  color.RGBA
	DisplayBG   color.RGBA
	DisplayText color.RGBA
	Button      color.RGBA
	ButtonText  color.RGBA
	Operator    color.RGBA
	Equal       color.RGBA
	Clear       color.RGBA
	Focus       color.RGBA
	Pressed     color.RGBA
}

func DefaultTheme() Theme {
	return Theme{
		Background:  rgb(0x10, 0x10, 0x14),
		DisplayBG:   rgb(0x00, 0x00, 0x00),
		DisplayText: rgb(0xEE, 0xEE, 0xEE),
		Button:      rgb(0x33, 0x33, 0x3A),
		ButtonText:  rgb(0xEE, 0xEE, 0xEE),
		Operator:    rgb(0xFF, 0x95, 0x00),
		Equal:       rgb(0x34, 0xC7, 0x59),
		Clear:       rgb(0xD0, 0x40, 0x40),
		Focus:       rgb(0x4A, 0xD1, 0xFF),
		Pressed:     rgb(0x66, 0x66, 0x70),
	}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
