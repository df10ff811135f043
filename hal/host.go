//go:build !tinygo

package hal

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// HostConfig selects the parts of the simulated exhibit.
type HostConfig struct {
	// Log receives every HAL log line. Nil logs to stderr.
	Log *zerolog.Logger
	// Script, if set, drives the joystick instead of the keyboard.
	Script []ScriptStep
	// Buzzer sounds a tone while the indicator is active (window mode only).
	Buzzer bool
}

// Runner drives a HAL until ctx is done or it fails.
type Runner func(ctx context.Context, h HAL) error

type hostHAL struct {
	logger *hostLogger
	clk    *hostClock
	stick  *VirtualStick
	js     Joystick
	panel  *Panel
	ind    Indicator
}

// New returns a host HAL with a keyboard stick and no buzzer.
func New() HAL {
	return newHost(HostConfig{})
}

func newHost(cfg HostConfig) *hostHAL {
	var log zerolog.Logger
	if cfg.Log != nil {
		log = *cfg.Log
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	log = log.With().Str("component", "hal").Logger()

	clk := newHostClock()
	h := &hostHAL{
		logger: &hostLogger{log: log},
		clk:    clk,
		stick:  NewVirtualStick(clk),
		panel:  NewPanel(),
	}
	h.js = h.stick
	if len(cfg.Script) > 0 {
		h.js = NewScriptedJoystick(clk, cfg.Script)
	}

	leds := []LED{h.panel.Lamp(), &traceLED{log: log}}
	if cfg.Buzzer {
		leds = append(leds, newHostBuzzer(log))
	}
	h.ind = NewIndicator(leds...)
	return h
}

func (h *hostHAL) Logger() Logger                 { return h.logger }
func (h *hostHAL) Clock() Clock                   { return h.clk }
func (h *hostHAL) Joystick() Joystick             { return h.js }
func (h *hostHAL) CharDisplay() CharDisplay       { return h.panel }
func (h *hostHAL) NumericDisplay() NumericDisplay { return h.panel }
func (h *hostHAL) Indicator() Indicator           { return h.ind }

// close releases sleepers and the buzzer.
func (h *hostHAL) close() {
	h.clk.stop()
	h.ind.SetActive(false)
}

type hostLogger struct {
	log zerolog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info().Msg(string(b))
}

// traceLED logs indicator edges at debug level.
type traceLED struct {
	log zerolog.Logger
}

func (l *traceLED) High() { l.log.Debug().Bool("indicator", true).Msg("pulse") }
func (l *traceLED) Low()  { l.log.Debug().Bool("indicator", false).Msg("pulse") }
