package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Axis selects one joystick channel.
type Axis uint8

const (
	// AxisA is the horizontal channel (digit selection).
	AxisA Axis = iota
	// AxisB is the vertical channel (digit value).
	AxisB
)

func (a Axis) String() string {
	switch a {
	case AxisA:
		return "A"
	case AxisB:
		return "B"
	default:
		return "?"
	}
}

// Sample range of every Joystick implementation (12-bit ADC).
const (
	SampleMin    = 0
	SampleMax    = 4095
	SampleCenter = 2048
)

// Joystick returns one raw analog sample per axis per poll.
type Joystick interface {
	Sample(axis Axis) int
}

// Clock provides the millisecond timebase.
//
// Millis is monotonic and non-decreasing. Sleep blocks the caller for ms
// milliseconds; it is the only way the control cycle suspends.
type Clock interface {
	Millis() uint64
	Sleep(ms uint64)
}

// CharDisplay is a 16x2 character LCD. Text past the last column is dropped.
type CharDisplay interface {
	Clear()
	SetCursor(col, row int)
	Print(text string)
}

// Character display geometry.
const (
	CharColumns = 16
	CharRows    = 2
)

// NumericDisplay is a four digit seven-segment display.
type NumericDisplay interface {
	ShowDecimal(n int)
}

// Indicator is the binary actuator used for pulse playback.
type Indicator interface {
	SetActive(on bool)
}

// HAL provides the only contact point between the controller and the outside world.
type HAL interface {
	Logger() Logger
	Clock() Clock
	Joystick() Joystick
	CharDisplay() CharDisplay
	NumericDisplay() NumericDisplay
	Indicator() Indicator
}

// ClampSample clips a raw reading into [SampleMin, SampleMax].
func ClampSample(v int) int {
	if v < SampleMin {
		return SampleMin
	}
	if v > SampleMax {
		return SampleMax
	}
	return v
}
