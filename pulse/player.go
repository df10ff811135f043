package pulse

// Indicator is the actuator pulses are played on.
type Indicator interface {
	SetActive(on bool)
}

// Sleeper blocks for a number of milliseconds.
type Sleeper interface {
	Sleep(ms uint64)
}

// apply writes the indicator level a step starts with. Gap and settle steps
// leave the (already low) indicator alone.
func apply(ind Indicator, st Step) {
	if ind == nil {
		return
	}
	switch st.Phase {
	case PhaseOn:
		ind.SetActive(true)
	case PhaseRest:
		ind.SetActive(false)
	}
}

// Play runs codes to completion, sleeping between steps. It cannot be
// interrupted. onStep, if set, is called as each step starts.
func Play(ind Indicator, clk Sleeper, codes []Code, onStep func(Step)) {
	for _, st := range Timeline(codes) {
		if onStep != nil {
			onStep(st)
		}
		apply(ind, st)
		clk.Sleep(st.Ms)
	}
}

// Sequencer plays the same timeline as Play without blocking. Each step's
// deadline is anchored to the previous deadline, not to the poll time, so a
// late poll does not stretch the total duration.
type Sequencer struct {
	ind      Indicator
	steps    []Step
	idx      int
	deadline uint64
	running  bool
	onStep   func(Step)
}

// NewSequencer returns an idle sequencer for codes.
func NewSequencer(ind Indicator, codes []Code, onStep func(Step)) *Sequencer {
	return &Sequencer{ind: ind, steps: Timeline(codes), onStep: onStep}
}

// Start begins playback at now, restarting if already running.
func (s *Sequencer) Start(now uint64) {
	s.idx = 0
	s.running = len(s.steps) > 0
	if s.running {
		s.enter(now)
	}
}

// Poll advances through every step whose deadline has passed. It reports
// whether playback is still running.
func (s *Sequencer) Poll(now uint64) bool {
	for s.running && now >= s.deadline {
		s.idx++
		if s.idx >= len(s.steps) {
			s.running = false
			if s.ind != nil {
				s.ind.SetActive(false)
			}
			break
		}
		s.enter(s.deadline)
	}
	return s.running
}

func (s *Sequencer) enter(at uint64) {
	st := s.steps[s.idx]
	s.deadline = at + st.Ms
	if s.onStep != nil {
		s.onStep(st)
	}
	apply(s.ind, st)
}

// Running reports whether playback is in progress.
func (s *Sequencer) Running() bool { return s.running }

// Current returns the step being played.
func (s *Sequencer) Current() (Step, bool) {
	if !s.running {
		return Step{}, false
	}
	return s.steps[s.idx], true
}

// Deadline returns the end time of the current step.
func (s *Sequencer) Deadline() uint64 { return s.deadline }
