//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/hd44780i2c"
	"tinygo.org/x/drivers/tm1637"
)

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{start: time.Now()} }

func (c *tinyGoClock) Millis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

func (c *tinyGoClock) Sleep(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func newPinLED(pin machine.Pin) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &pinLED{pin: pin}
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// adcJoystick reads two ADC channels. The RP2040 reports 16-bit samples;
// they are scaled to 12 bits. The horizontal pot is mounted reversed, so
// its reading is mirrored: pushing left must read low.
type adcJoystick struct {
	x, y machine.ADC
}

func newADCJoystick(x, y machine.Pin) (*adcJoystick, error) {
	machine.InitADC()
	j := &adcJoystick{x: machine.ADC{Pin: x}, y: machine.ADC{Pin: y}}
	if err := j.x.Configure(machine.ADCConfig{}); err != nil {
		return nil, err
	}
	if err := j.y.Configure(machine.ADCConfig{}); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *adcJoystick) Sample(axis Axis) int {
	switch axis {
	case AxisA:
		return SampleMax - int(j.x.Get()>>4)
	case AxisB:
		return int(j.y.Get() >> 4)
	}
	return SampleCenter
}

type segmentDisplay struct {
	dev tm1637.Device
}

func (d *segmentDisplay) ShowDecimal(n int) {
	if n < 0 {
		n = 0
	}
	if n > 9999 {
		n = 9999
	}
	d.dev.DisplayNumber(int16(n))
}

type lcdDisplay struct {
	dev *hd44780i2c.Device
	col int
}

func (d *lcdDisplay) Clear() {
	d.dev.ClearDisplay()
	d.col = 0
}

func (d *lcdDisplay) SetCursor(col, row int) {
	d.col = col
	d.dev.SetCursor(uint8(col), uint8(row))
}

// Print stops at the last column; the driver would wrap onto the next row.
func (d *lcdDisplay) Print(text string) {
	text = clipRow(d.col, text)
	if text == "" {
		return
	}
	d.dev.Print([]byte(text))
	d.col += len(text)
}
