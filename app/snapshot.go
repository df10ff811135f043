package app

import (
	"fmt"

	"trail/input"
)

// Snapshot is a copy of the controller state for observers.
type Snapshot struct {
	Cycle  uint64                  `json:"cycle"`
	Millis uint64                  `json:"millis"`
	Digits [input.DigitCount]uint8 `json:"digits"`
	Cursor int                     `json:"cursor"`
	Value  int                     `json:"value"`
	Target int                     `json:"target"`

	ScrollOffset int    `json:"scroll_offset"`
	ScrollView   string `json:"scroll_view"`

	Ritual string `json:"ritual"`
	Runs   uint64 `json:"runs"`
	Seq    int    `json:"seq"`
	Pulse  int    `json:"pulse"`
	Phase  string `json:"phase,omitempty"`
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Cycle:        c.cycle,
		Millis:       c.now,
		Digits:       c.editor.Digits(),
		Cursor:       c.editor.Cursor(),
		Value:        c.editor.Value(),
		Target:       c.ritual.Target(),
		ScrollOffset: c.window.Offset(),
		ScrollView:   c.window.View(),
		Ritual:       c.ritual.State().String(),
		Runs:         c.ritual.Runs(),
		Seq:          -1,
		Pulse:        -1,
	}
	if c.ritual.Active() {
		st := c.ritual.Step()
		if st.Phase != 0 {
			s.Seq = st.Seq
			s.Pulse = st.Pulse
			s.Phase = st.Phase.String()
		}
	}
	return s
}

// sameState compares everything but the counters.
func (s Snapshot) sameState(o Snapshot) bool {
	s.Cycle, o.Cycle = 0, 0
	s.Millis, o.Millis = 0, 0
	return s == o
}

func (s Snapshot) String() string {
	out := fmt.Sprintf("value=%04d cursor=%d ritual=%s runs=%d scroll=%d", s.Value, s.Cursor, s.Ritual, s.Runs, s.ScrollOffset)
	if s.Phase != "" {
		out += fmt.Sprintf(" seq=%d pulse=%d %s", s.Seq, s.Pulse, s.Phase)
	}
	return out
}
