//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
	"tinygo.org/x/drivers/tm1637"
)

// Exhibit wiring on a Raspberry Pi Pico.
const (
	pinStickX  = machine.GP26 // ADC0, horizontal
	pinStickY  = machine.GP27 // ADC1, vertical
	pinSegCLK  = machine.GP2
	pinSegDIO  = machine.GP3
	pinSDA     = machine.GP8 // I2C0
	pinSCL     = machine.GP9
	pinLED1    = machine.GP20
	pinLED2    = machine.GP21
	pinBuzzer  = machine.GP16
	lcdAddress = 0x27

	segBrightness = 7
)

type tinyGoHAL struct {
	logger *uartLogger
	clk    *tinyGoClock
	js     Joystick
	lcd    CharDisplay
	num    NumericDisplay
	ind    Indicator
}

// New returns the Pico HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// A peripheral that fails to come up is replaced by a null device and
// logged; the exhibit keeps running with what is left.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	h := &tinyGoHAL{
		logger: logger,
		clk:    newTinyGoClock(),
	}

	if js, err := newADCJoystick(pinStickX, pinStickY); err == nil {
		h.js = js
	} else {
		logger.WriteLineString("hal: joystick: " + err.Error())
		h.js = nullDevice{}
	}

	seg := tm1637.New(pinSegCLK, pinSegDIO, segBrightness)
	seg.Configure()
	h.num = &segmentDisplay{dev: seg}

	if lcd, err := newI2CLCD(pinSDA, pinSCL, lcdAddress); err == nil {
		h.lcd = lcd
	} else {
		logger.WriteLineString("hal: lcd: " + err.Error())
		h.lcd = nullDevice{}
	}

	h.ind = NewIndicator(newPinLED(pinLED1), newPinLED(pinLED2), newPinLED(pinBuzzer))
	return h
}

func (h *tinyGoHAL) Logger() Logger                 { return h.logger }
func (h *tinyGoHAL) Clock() Clock                   { return h.clk }
func (h *tinyGoHAL) Joystick() Joystick             { return h.js }
func (h *tinyGoHAL) CharDisplay() CharDisplay       { return h.lcd }
func (h *tinyGoHAL) NumericDisplay() NumericDisplay { return h.num }
func (h *tinyGoHAL) Indicator() Indicator           { return h.ind }

func newI2CLCD(sda, scl machine.Pin, addr uint8) (*lcdDisplay, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{SDA: sda, SCL: scl}); err != nil {
		return nil, err
	}
	dev := hd44780i2c.New(bus, addr)
	if err := dev.Configure(hd44780i2c.Config{Width: CharColumns, Height: CharRows}); err != nil {
		return nil, err
	}
	return &lcdDisplay{dev: &dev}, nil
}
