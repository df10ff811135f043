package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// Canvas is an RGB565 pixel buffer that satisfies drivers.Displayer, so
// tinyfont can draw on it.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas returns a black canvas.
func NewCanvas(width, height int) *Canvas {
	stride := width * 2
	return &Canvas{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (c *Canvas) Size() (x, y int16) { return int16(c.width), int16(c.height) }

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(int(x), int(y), rgb565(col.R, col.G, col.B))
}

func (c *Canvas) set(x, y int, pixel uint16) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	off := y*c.stride + x*2
	c.buf[off] = byte(pixel)
	c.buf[off+1] = byte(pixel >> 8)
}

func (c *Canvas) Display() error { return nil }

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	c.FillRectangle(0, 0, int16(c.width), int16(c.height), col)
}

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pixel := rgb565(col.R, col.G, col.B)
	for yy := int(y); yy < int(y)+int(height); yy++ {
		for xx := int(x); xx < int(x)+int(width); xx++ {
			c.set(xx, yy, pixel)
		}
	}
}

// At returns the pixel at x, y widened back to 8 bits per channel.
func (c *Canvas) At(x, y int) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}
	}
	off := y*c.stride + x*2
	r, g, b := rgb888From565(uint16(c.buf[off]) | uint16(c.buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// RGBA expands the canvas into dst as 8-bit RGBA. dst must hold
// width*height*4 bytes.
func (c *Canvas) RGBA(dst []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.buf
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
