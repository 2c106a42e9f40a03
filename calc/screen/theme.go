package screen

import (
	"image/color"

	"calc/calc/keypad"
)

// Theme holds the screen colors.
type Theme struct {
	Display      color.RGBA
	Digit        color.RGBA
	Operator     color.RGBA
	Equals       color.RGBA
	EqualsActive color.RGBA
	Clear        color.RGBA
	ClearActive  color.RGBA
	Label        color.RGBA
	// Pressed fills digit and operator keys while highlighted.
	Pressed color.RGBA
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// DefaultTheme is the light theme.
func DefaultTheme() Theme {
	return Theme{
		Display:      rgb(0xF5F5F5),
		Digit:        rgb(0xFFFFFF),
		Operator:     rgb(0xF8FAFF),
		Equals:       rgb(0xCCEDFF),
		EqualsActive: rgb(0xB9D7E8),
		Clear:        rgb(0xFF5F7C),
		ClearActive:  rgb(0xEC5F79),
		Label:        rgb(0x25265E),
		Pressed:      rgb(0xECECEC),
	}
}

// KeyColor is the fill for a key of style s.
func (t Theme) KeyColor(s keypad.Style, pressed bool) color.RGBA {
	switch s {
	case keypad.StyleEquals:
		if pressed {
			return t.EqualsActive
		}
		return t.Equals
	case keypad.StyleClear:
		if pressed {
			return t.ClearActive
		}
		return t.Clear
	}
	if pressed {
		return t.Pressed
	}
	if s == keypad.StyleOperator {
		return t.Operator
	}
	return t.Digit
}
