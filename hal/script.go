package hal

import "sync"

// ScriptStep deflects one axis to Sample for HoldMs starting at AtMs.
type ScriptStep struct {
	AtMs   uint64
	HoldMs uint64
	Axis   Axis
	Sample int
}

// ScriptedJoystick replays timed deflections against a clock. Axes with no
// active step read SampleCenter.
type ScriptedJoystick struct {
	mu    sync.Mutex
	clk   Clock
	steps []ScriptStep
}

// NewScriptedJoystick returns a joystick driven by steps.
func NewScriptedJoystick(clk Clock, steps []ScriptStep) *ScriptedJoystick {
	return &ScriptedJoystick{clk: clk, steps: append([]ScriptStep(nil), steps...)}
}

// Append queues more steps.
func (j *ScriptedJoystick) Append(steps ...ScriptStep) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.steps = append(j.steps, steps...)
}

func (j *ScriptedJoystick) Sample(axis Axis) int {
	now := j.clk.Millis()
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, st := range j.steps {
		if st.Axis == axis && now >= st.AtMs && now < st.AtMs+st.HoldMs {
			return ClampSample(st.Sample)
		}
	}
	return SampleCenter
}

// EndMs is the time the last step releases.
func (j *ScriptedJoystick) EndMs() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	var end uint64
	for _, st := range j.steps {
		if e := st.AtMs + st.HoldMs; e > end {
			end = e
		}
	}
	return end
}
