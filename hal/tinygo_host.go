//go:build tinygo && !baremetal

package hal

import (
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	clk    *tinyGoHostClock
	panel  *Panel
	ind    Indicator
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the stick stays centered and the panel is printed whenever it
// changes.
func New() HAL {
	l := &tinyGoHostLogger{}
	p := NewPanel()
	return &tinyGoHostHAL{
		logger: l,
		clk:    &tinyGoHostClock{start: time.Now()},
		panel:  p,
		ind:    NewIndicator(p.Lamp(), &tinyGoHostLED{logger: l}),
	}
}

func (h *tinyGoHostHAL) Logger() Logger                 { return h.logger }
func (h *tinyGoHostHAL) Clock() Clock                   { return h.clk }
func (h *tinyGoHostHAL) Joystick() Joystick             { return nullDevice{} }
func (h *tinyGoHostHAL) CharDisplay() CharDisplay       { return printingDisplay{h} }
func (h *tinyGoHostHAL) NumericDisplay() NumericDisplay { return printingDisplay{h} }
func (h *tinyGoHostHAL) Indicator() Indicator           { return h.ind }

// printingDisplay forwards to the panel and prints it after each write.
type printingDisplay struct{ h *tinyGoHostHAL }

func (d printingDisplay) Clear()                 { d.h.panel.Clear() }
func (d printingDisplay) SetCursor(col, row int) { d.h.panel.SetCursor(col, row) }

func (d printingDisplay) Print(text string) {
	d.h.panel.Print(text)
	d.h.logger.WriteLineString(d.h.panel.State().String())
}

func (d printingDisplay) ShowDecimal(n int) {
	before := d.h.panel.State().Version
	d.h.panel.ShowDecimal(n)
	if s := d.h.panel.State(); s.Version != before {
		d.h.logger.WriteLineString(s.String())
	}
}

type tinyGoHostClock struct {
	start time.Time
}

func (c *tinyGoHostClock) Millis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

func (c *tinyGoHostClock) Sleep(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.logger.WriteLineString("indicator: ON (tinygo/" + runtime.GOOS + ")")
}

func (l *tinyGoHostLED) Low() {
	l.logger.WriteLineString("indicator: off (tinygo/" + runtime.GOOS + ")")
}
