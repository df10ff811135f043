//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// Arrow keys map onto the stick: left/right move the cursor, up raises the
// selected digit and down lowers it.
var stickKeys = [...]struct {
	key    ebiten.Key
	axis   Axis
	sample int
}{
	{ebiten.KeyArrowLeft, AxisA, SampleMin},
	{ebiten.KeyArrowRight, AxisA, SampleMax},
	{ebiten.KeyArrowUp, AxisB, SampleMin},
	{ebiten.KeyArrowDown, AxisB, SampleMax},
}

func pollStick(s *VirtualStick) {
	var pressed [2]bool
	for _, k := range stickKeys {
		if ebiten.IsKeyPressed(k.key) && !pressed[k.axis] {
			pressed[k.axis] = true
			s.Press(k.axis, k.sample)
		}
	}
	for axis, on := range pressed {
		if !on {
			s.Release(Axis(axis))
		}
	}
}
