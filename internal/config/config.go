// Package config loads the host runner configuration. Exhibit content
// (target, message, question) is compiled in and not configurable here.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Front-ends.
const (
	ModeWindow   = "window"
	ModeHeadless = "headless"
	ModeTUI      = "tui"
)

// Device backends.
const (
	BackendSim    = "sim"
	BackendPeriph = "periph"
)

// Ritual scheduling.
const (
	SchedulingBlocking    = "blocking"
	SchedulingCooperative = "cooperative"
)

type Headless struct {
	// Dial scripts the joystick to dial this number (-1 = no script).
	Dial     int           `yaml:"dial"`
	Duration time.Duration `yaml:"duration"`
	// PanelEvery logs the panel at this interval when it changed (0 = off).
	PanelEvery time.Duration `yaml:"panel_every"`
}

type Monitor struct {
	Addr string `yaml:"addr"` // e.g. 127.0.0.1:8089, empty = off
}

type Periph struct {
	I2CBus           string   `yaml:"i2c_bus"`
	ADCAddress       uint16   `yaml:"adc_address"`
	ChannelX         int      `yaml:"channel_x"`
	ChannelY         int      `yaml:"channel_y"`
	SupplyMilliVolts int      `yaml:"supply_mv"`
	InvertX          bool     `yaml:"invert_x"`
	SegCLK           string   `yaml:"seg_clk"`
	SegDIO           string   `yaml:"seg_dio"`
	LCDData          []string `yaml:"lcd_data"`
	LCDRS            string   `yaml:"lcd_rs"`
	LCDE             string   `yaml:"lcd_e"`
	LEDs             []string `yaml:"leds"`
}

type Config struct {
	Mode       string `yaml:"mode"`
	Backend    string `yaml:"backend"`
	Scheduling string `yaml:"scheduling"`
	Latch      bool   `yaml:"latch"`
	PollMs     uint64 `yaml:"poll_ms"`
	LogLevel   string `yaml:"log_level"`
	// LogFile receives logs in tui mode, where stderr belongs to the screen.
	LogFile string `yaml:"log_file,omitempty"`
	Scale   int    `yaml:"scale"`

	Headless Headless `yaml:"headless"`
	Monitor  Monitor  `yaml:"monitor"`
	Periph   Periph   `yaml:"periph,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mode:       ModeWindow,
		Backend:    BackendSim,
		Scheduling: SchedulingBlocking,
		PollMs:     5,
		LogLevel:   "info",
		Scale:      4,
		Headless:   Headless{Dial: -1},
		Periph: Periph{
			ADCAddress:       0x48,
			ChannelX:         0,
			ChannelY:         1,
			SupplyMilliVolts: 3300,
			InvertX:          true,
			SegCLK:           "GPIO23",
			SegDIO:           "GPIO24",
			LCDData:          []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
			LCDRS:            "GPIO26",
			LCDE:             "GPIO21",
			LEDs:             []string{"GPIO17", "GPIO27"},
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate rejects unknown modes and impossible values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeWindow, ModeHeadless, ModeTUI:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	switch c.Backend {
	case BackendSim, BackendPeriph:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Scheduling {
	case SchedulingBlocking, SchedulingCooperative:
	default:
		return fmt.Errorf("unknown scheduling %q", c.Scheduling)
	}
	if c.Headless.Dial < -1 || c.Headless.Dial > 9999 {
		return fmt.Errorf("headless.dial %d out of range", c.Headless.Dial)
	}
	if c.Headless.Duration < 0 {
		return fmt.Errorf("headless.duration must not be negative")
	}
	if c.Backend == BackendPeriph && len(c.Periph.LCDData) != 4 {
		return fmt.Errorf("periph.lcd_data needs 4 pins, got %d", len(c.Periph.LCDData))
	}
	return nil
}

// Cooperative reports whether the ritual runs as a state machine.
func (c *Config) Cooperative() bool { return c.Scheduling == SchedulingCooperative }
