// Package input turns raw joystick samples into digit edits.
package input

import "trail/hal"

// Direction is the discrete reading of one joystick axis.
type Direction int8

const (
	Negative Direction = -1
	Neutral  Direction = 0
	Positive Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	default:
		return "neutral"
	}
}

const (
	// Center is the resting sample of both axes.
	Center = hal.SampleCenter
	// Deadzone is the half-width of the neutral band around Center.
	Deadzone = 800
)

// Classify clips a raw sample and maps it onto a direction.
// Samples strictly beyond Center±Deadzone are deflections.
func Classify(sample int) Direction {
	s := hal.ClampSample(sample)
	switch {
	case s < Center-Deadzone:
		return Negative
	case s > Center+Deadzone:
		return Positive
	default:
		return Neutral
	}
}

// Read samples both axes of js once, A first.
func Read(js hal.Joystick) (a, b Direction) {
	if js == nil {
		return Neutral, Neutral
	}
	a = Classify(js.Sample(hal.AxisA))
	b = Classify(js.Sample(hal.AxisB))
	return a, b
}
