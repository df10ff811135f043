package input

import (
	"fmt"

	"trail/hal"
)

// Move is one debounced joystick deflection.
type Move struct {
	Axis hal.Axis
	Dir  Direction
}

// Sample returns the raw reading that produces m.Dir on a full deflection.
func (m Move) Sample() int {
	switch m.Dir {
	case Negative:
		return hal.SampleMin
	case Positive:
		return hal.SampleMax
	default:
		return Center
	}
}

// PlanDial returns the shortest sequence of single-axis moves that takes an
// editor from (digits, cursor) to show target.
func PlanDial(digits [DigitCount]uint8, cursor int, target int) ([]Move, error) {
	if target < 0 || target > 9999 {
		return nil, fmt.Errorf("dial: target %d out of range", target)
	}
	if cursor < 0 || cursor >= DigitCount {
		return nil, fmt.Errorf("dial: cursor %d out of range", cursor)
	}

	want := [DigitCount]uint8{
		uint8(target / 1000 % 10),
		uint8(target / 100 % 10),
		uint8(target / 10 % 10),
		uint8(target % 10),
	}

	var moves []Move
	for i := 0; i < DigitCount; i++ {
		if digits[i] == want[i] {
			continue
		}

		right := (i - cursor + DigitCount) % DigitCount
		if right <= DigitCount-right {
			moves = appendN(moves, Move{Axis: hal.AxisA, Dir: Positive}, right)
		} else {
			moves = appendN(moves, Move{Axis: hal.AxisA, Dir: Negative}, DigitCount-right)
		}
		cursor = i

		up := (int(want[i]) - int(digits[i]) + 10) % 10
		if up <= 10-up {
			moves = appendN(moves, Move{Axis: hal.AxisB, Dir: Negative}, up)
		} else {
			moves = appendN(moves, Move{Axis: hal.AxisB, Dir: Positive}, 10-up)
		}
	}
	return moves, nil
}

func appendN(moves []Move, m Move, n int) []Move {
	for i := 0; i < n; i++ {
		moves = append(moves, m)
	}
	return moves
}
