package app

import (
	"trail/hal"
	"trail/input"
)

// Joystick script pacing. Each move is held shorter than the debounce
// interval and the next one starts after it, so every move lands exactly once.
const (
	ScriptStepMs = 250
	ScriptHoldMs = 150
)

// DialScript returns joystick steps that take a freshly booted editor to
// target. The first move starts at startMs, or once the boot debounce
// window has passed.
func DialScript(target int, startMs uint64) ([]hal.ScriptStep, error) {
	moves, err := input.PlanDial([input.DigitCount]uint8{}, 0, target)
	if err != nil {
		return nil, err
	}
	if startMs <= input.DebounceMs {
		startMs = input.DebounceMs + ScriptStepMs - ScriptHoldMs
	}
	return ScriptMoves(moves, startMs), nil
}

// ScriptMoves paces moves ScriptStepMs apart starting at startMs.
func ScriptMoves(moves []input.Move, startMs uint64) []hal.ScriptStep {
	steps := make([]hal.ScriptStep, 0, len(moves))
	at := startMs
	for _, m := range moves {
		steps = append(steps, hal.ScriptStep{
			AtMs:   at,
			HoldMs: ScriptHoldMs,
			Axis:   m.Axis,
			Sample: m.Sample(),
		})
		at += ScriptStepMs
	}
	return steps
}
