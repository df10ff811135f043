//go:build !tinygo

package hal

import "github.com/rs/zerolog"

// PeriphConfig names the pins and buses of a Linux single-board computer
// build of the exhibit. Pin names are periph.io names (e.g. "GPIO17").
type PeriphConfig struct {
	Log *zerolog.Logger

	// I2CBus is the bus the joystick ADC sits on ("" = first bus).
	I2CBus string
	// ADCAddress is the ADS1115 address.
	ADCAddress uint16
	// ChannelX and ChannelY are the ADS1115 inputs of the two pots.
	ChannelX int
	ChannelY int
	// SupplyMilliVolts is the pot supply; readings are scaled against it.
	SupplyMilliVolts int
	// InvertX mirrors the horizontal axis for a reversed pot.
	InvertX bool

	SegCLK string
	SegDIO string

	// LCDData are D4..D7 of a 4-bit parallel HD44780.
	LCDData []string
	LCDRS   string
	LCDE    string

	// LEDs are driven together as the indicator.
	LEDs []string
}

// DefaultPeriphConfig is the reference wiring on a Raspberry Pi header.
func DefaultPeriphConfig() PeriphConfig {
	return PeriphConfig{
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
	}
}

// scaleMilliVolts maps a pot voltage onto the 12-bit sample range.
func scaleMilliVolts(mv, supply int, invert bool) int {
	if supply <= 0 {
		return SampleCenter
	}
	v := ClampSample(mv * SampleMax / supply)
	if invert {
		v = SampleMax - v
	}
	return v
}
