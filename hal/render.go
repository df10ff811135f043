package hal

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// Panel canvas geometry used by the window front-end.
const (
	PanelWidth  = 160
	PanelHeight = 100
)

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x10, 0xFF}
	colorSegmentOn  = color.RGBA{0xFF, 0x20, 0x20, 0xFF}
	colorSegmentOff = color.RGBA{0x30, 0x10, 0x10, 0xFF}
	colorLCD        = color.RGBA{0x40, 0x80, 0x20, 0xFF}
	colorLCDText    = color.RGBA{0x08, 0x18, 0x08, 0xFF}
	colorLampOn     = color.RGBA{0xFF, 0xC0, 0x20, 0xFF}
	colorLampOff    = color.RGBA{0x30, 0x28, 0x10, 0xFF}
)

// segments maps digits to the usual gfedcba bit pattern.
var segments = [10]uint8{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F}

// SegmentMask returns the lit segments for one character of the numeric
// display. Anything that is not a digit is blank.
func SegmentMask(ch byte) uint8 {
	if ch < '0' || ch > '9' {
		return 0
	}
	return segments[ch-'0']
}

const (
	segX0     = 20
	segY0     = 8
	segW      = 20
	segH      = 36
	segT      = 3
	segPitch  = 28
	lampX     = 140
	lampY     = 20
	lampSize  = 12
	lcdX      = 8
	lcdY      = 56
	lcdW      = 144
	lcdH      = 32
	lcdCellW  = 8
	lcdRowH   = 12
	lcdMargin = 8
)

// RenderPanel draws s onto c.
func RenderPanel(c *Canvas, s PanelState) {
	c.Fill(colorBackground)

	digits := s.Digits()
	for i := 0; i < 4; i++ {
		drawDigit(c, int16(segX0+i*segPitch), segY0, SegmentMask(digits[i]))
	}

	lamp := colorLampOff
	if s.Lamp {
		lamp = colorLampOn
	}
	c.FillRectangle(lampX, lampY, lampSize, lampSize, lamp)

	c.FillRectangle(lcdX, lcdY, lcdW, lcdH, colorLCD)
	for row, line := range s.Lines {
		y := int16(lcdY + lcdMargin + (row+1)*lcdRowH - 4)
		for col := 0; col < len(line) && col < CharColumns; col++ {
			if line[col] == ' ' {
				continue
			}
			x := int16(lcdX + lcdMargin + col*lcdCellW)
			tinyfont.WriteLine(c, &tinyfont.TomThumb, x, y, line[col:col+1], colorLCDText)
		}
	}
}

func drawDigit(c *Canvas, x, y int16, mask uint8) {
	half := int16(segH / 2)
	rects := [7][4]int16{
		{x + segT, y, segW - 2*segT, segT},                 // a
		{x + segW - segT, y + segT, segT, half - segT},     // b
		{x + segW - segT, y + half, segT, half - segT},     // c
		{x + segT, y + segH - segT, segW - 2*segT, segT},   // d
		{x, y + half, segT, half - segT},                   // e
		{x, y + segT, segT, half - segT},                   // f
		{x + segT, y + half - segT/2, segW - 2*segT, segT}, // g
	}
	for i, r := range rects {
		col := colorSegmentOff
		if mask&(1<<uint(i)) != 0 {
			col = colorSegmentOn
		}
		c.FillRectangle(r[0], r[1], r[2], r[3], col)
	}
}
