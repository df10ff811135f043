//go:build linux && !tinygo && periph

package hal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/hd44780"
	"periph.io/x/devices/v3/tm1637"
	"periph.io/x/host/v3"
)

// PeriphAvailable reports whether this build can drive real hardware.
const PeriphAvailable = true

type periphHAL struct {
	logger *hostLogger
	clk    *hostClock
	js     Joystick
	lcd    CharDisplay
	num    NumericDisplay
	ind    Indicator

	closers []func() error
}

// RunPeriph brings up the exhibit hardware and runs on the calling
// goroutine. Like the Pico build, a display that fails to come up is
// replaced by a null device; missing indicator pins are an error.
func RunPeriph(ctx context.Context, run Runner, cfg PeriphConfig) error {
	h, err := newPeriph(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		h.clk.stop()
	}()

	err = run(ctx, h)
	if err == context.Canceled {
		return nil
	}
	return err
}

func newPeriph(cfg PeriphConfig) (*periphHAL, error) {
	var log zerolog.Logger
	if cfg.Log != nil {
		log = *cfg.Log
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	log = log.With().Str("component", "periph").Logger()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: host init: %w", err)
	}

	h := &periphHAL{
		logger: &hostLogger{log: log},
		clk:    newHostClock(),
	}

	if js, err := h.openJoystick(cfg); err == nil {
		h.js = js
	} else {
		log.Error().Err(err).Msg("joystick unavailable, reading center")
		h.js = nullDevice{}
	}

	if seg, err := openSegments(cfg); err == nil {
		h.num = seg
	} else {
		log.Error().Err(err).Msg("numeric display unavailable")
		h.num = nullDevice{}
	}

	if lcd, err := openLCD(cfg); err == nil {
		h.lcd = lcd
		h.closers = append(h.closers, lcd.halt)
	} else {
		log.Error().Err(err).Msg("character display unavailable")
		h.lcd = nullDevice{}
	}

	var leds []LED
	for _, name := range cfg.LEDs {
		p := gpioreg.ByName(name)
		if p == nil {
			h.close()
			return nil, fmt.Errorf("periph: indicator pin %q not found", name)
		}
		leds = append(leds, gpioLED{pin: p})
	}
	h.ind = NewIndicator(leds...)
	h.ind.SetActive(false)
	return h, nil
}

func (h *periphHAL) Logger() Logger                 { return h.logger }
func (h *periphHAL) Clock() Clock                   { return h.clk }
func (h *periphHAL) Joystick() Joystick             { return h.js }
func (h *periphHAL) CharDisplay() CharDisplay       { return h.lcd }
func (h *periphHAL) NumericDisplay() NumericDisplay { return h.num }
func (h *periphHAL) Indicator() Indicator           { return h.ind }

func (h *periphHAL) close() {
	h.clk.stop()
	if h.ind != nil {
		h.ind.SetActive(false)
	}
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil {
			h.logger.log.Warn().Err(err).Msg("close")
		}
	}
}

func (h *periphHAL) openJoystick(cfg PeriphConfig) (*adsJoystick, error) {
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("i2c %q: %w", cfg.I2CBus, err)
	}
	h.closers = append(h.closers, bus.Close)

	opts := ads1x15.DefaultOpts
	if cfg.ADCAddress != 0 {
		opts.I2cAddress = cfg.ADCAddress
	}
	adc, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ads1115: %w", err)
	}

	supply := physic.ElectricPotential(cfg.SupplyMilliVolts) * physic.MilliVolt
	var pins [2]ads1x15.PinADC
	for i, ch := range []int{cfg.ChannelX, cfg.ChannelY} {
		c, err := adsChannel(ch)
		if err != nil {
			return nil, err
		}
		pins[i], err = adc.PinForChannel(c, supply, 100*physic.Hertz, ads1x15.BestQuality)
		if err != nil {
			return nil, fmt.Errorf("ads1115 channel %d: %w", ch, err)
		}
		h.closers = append(h.closers, pins[i].Halt)
	}
	return &adsJoystick{pins: pins, supplyMV: cfg.SupplyMilliVolts, invertX: cfg.InvertX, log: h.logger.log}, nil
}

func adsChannel(n int) (ads1x15.Channel, error) {
	switch n {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("ads1115: no channel %d", n)
}

// adsJoystick reads the two pots through an ADS1115.
type adsJoystick struct {
	mu       sync.Mutex
	pins     [2]ads1x15.PinADC
	supplyMV int
	invertX  bool
	log      zerolog.Logger
}

func (j *adsJoystick) Sample(axis Axis) int {
	if axis > AxisB {
		return SampleCenter
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	s, err := j.pins[axis].Read()
	if err != nil {
		j.log.Warn().Err(err).Stringer("axis", axis).Msg("adc read")
		return SampleCenter
	}
	return scaleMilliVolts(milliVolts(s), j.supplyMV, axis == AxisA && j.invertX)
}

func milliVolts(s analog.Sample) int {
	return int(s.V / physic.MilliVolt)
}

type segmentDev struct {
	dev *tm1637.Dev
}

func openSegments(cfg PeriphConfig) (*segmentDev, error) {
	clk := gpioreg.ByName(cfg.SegCLK)
	dio := gpioreg.ByName(cfg.SegDIO)
	if clk == nil || dio == nil {
		return nil, fmt.Errorf("tm1637 pins %q/%q not found", cfg.SegCLK, cfg.SegDIO)
	}
	dev, err := tm1637.New(clk, dio)
	if err != nil {
		return nil, fmt.Errorf("tm1637: %w", err)
	}
	if err := dev.SetBrightness(tm1637.Brightness14); err != nil {
		return nil, fmt.Errorf("tm1637 brightness: %w", err)
	}
	return &segmentDev{dev: dev}, nil
}

func (d *segmentDev) ShowDecimal(n int) {
	if n < 0 {
		n = 0
	}
	if n > 9999 {
		n = 9999
	}
	text := strconv.Itoa(n)
	for len(text) < 4 {
		text = " " + text
	}
	seg := make([]byte, 4)
	for i := range seg {
		seg[i] = SegmentMask(text[i])
	}
	_, _ = d.dev.Write(seg)
}

type lcdDev struct {
	dev *hd44780.Dev
	col uint8
	row uint8
}

func openLCD(cfg PeriphConfig) (*lcdDev, error) {
	if len(cfg.LCDData) != 4 {
		return nil, fmt.Errorf("hd44780 needs 4 data pins, got %d", len(cfg.LCDData))
	}
	data := make([]gpio.PinOut, 0, 4)
	for _, name := range cfg.LCDData {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("hd44780 pin %q not found", name)
		}
		data = append(data, p)
	}
	rs := gpioreg.ByName(cfg.LCDRS)
	e := gpioreg.ByName(cfg.LCDE)
	if rs == nil || e == nil {
		return nil, fmt.Errorf("hd44780 pins %q/%q not found", cfg.LCDRS, cfg.LCDE)
	}
	return newLCDDev(data, rs, e)
}

// newLCDDev resets the controller, which also clears it and homes the cursor.
func newLCDDev(data []gpio.PinOut, rs, e gpio.PinOut) (*lcdDev, error) {
	dev, err := hd44780.New(data, rs, e)
	if err != nil {
		return nil, fmt.Errorf("hd44780: %w", err)
	}
	return &lcdDev{dev: dev}, nil
}

// Clear uses Halt, which is the controller's clear-display instruction.
func (d *lcdDev) Clear() {
	_ = d.dev.Halt()
	d.SetCursor(0, 0)
}

func (d *lcdDev) SetCursor(col, row int) {
	d.col, d.row = uint8(col), uint8(row)
	_ = d.dev.SetCursor(d.row, d.col)
}

func (d *lcdDev) Print(text string) {
	text = clipRow(int(d.col), text)
	if text == "" {
		return
	}
	_ = d.dev.Print(text)
	d.col += uint8(len(text))
}

func (d *lcdDev) halt() error { return d.dev.Halt() }

type gpioLED struct {
	pin gpio.PinIO
}

func (l gpioLED) High() { _ = l.pin.Out(gpio.High) }
func (l gpioLED) Low()  { _ = l.pin.Out(gpio.Low) }
