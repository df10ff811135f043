package hal

import "sync"

// VirtualStick is a Joystick fed by a keyboard. A deflection either lasts
// until released (window keys report releases) or until a deadline on the
// clock (terminals only report presses).
type VirtualStick struct {
	mu    sync.Mutex
	clk   Clock
	axes  [2]int
	until [2]uint64
	held  [2]bool
}

// NewVirtualStick returns a centered stick timed by clk.
func NewVirtualStick(clk Clock) *VirtualStick {
	return &VirtualStick{clk: clk, axes: [2]int{SampleCenter, SampleCenter}}
}

// Press deflects axis to sample until Release.
func (s *VirtualStick) Press(axis Axis, sample int) {
	if axis > AxisB {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.axes[axis] = ClampSample(sample)
	s.held[axis] = true
}

// Release centers axis.
func (s *VirtualStick) Release(axis Axis) {
	if axis > AxisB {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.axes[axis] = SampleCenter
	s.held[axis] = false
	s.until[axis] = 0
}

// Nudge deflects axis to sample for ms milliseconds.
func (s *VirtualStick) Nudge(axis Axis, sample int, ms uint64) {
	if axis > AxisB {
		return
	}
	now := s.clk.Millis()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.axes[axis] = ClampSample(sample)
	s.held[axis] = false
	s.until[axis] = now + ms
}

func (s *VirtualStick) Sample(axis Axis) int {
	if axis > AxisB {
		return SampleCenter
	}
	now := s.clk.Millis()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[axis] || now < s.until[axis] {
		return s.axes[axis]
	}
	return SampleCenter
}
