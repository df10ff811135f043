package pulse

// Phase names one timed segment of playback.
type Phase uint8

const (
	PhaseOn Phase = iota + 1
	PhaseRest
	PhaseGap
	PhaseSettle
)

func (p Phase) String() string {
	switch p {
	case PhaseOn:
		return "on"
	case PhaseRest:
		return "rest"
	case PhaseGap:
		return "gap"
	case PhaseSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// Step is one segment of a playback timeline.
type Step struct {
	Seq    int // index of the code being played
	Pulse  int // index of the pulse within the code; -1 for settle
	Kind   Kind
	Phase  Phase
	Active bool // indicator level during the step
	Ms     uint64
}

// Timeline expands codes into the ordered list of steps the players follow.
func Timeline(codes []Code) []Step {
	steps := make([]Step, 0, len(codes)*(CodeLen*3+1))
	for si, c := range codes {
		for pi, k := range c {
			steps = append(steps,
				Step{Seq: si, Pulse: pi, Kind: k, Phase: PhaseOn, Active: true, Ms: k.OnMs()},
				Step{Seq: si, Pulse: pi, Kind: k, Phase: PhaseRest, Ms: k.RestMs()},
				Step{Seq: si, Pulse: pi, Kind: k, Phase: PhaseGap, Ms: GapMs},
			)
		}
		steps = append(steps, Step{Seq: si, Pulse: -1, Phase: PhaseSettle, Ms: SettleMs})
	}
	return steps
}

// TotalMs is the playback duration of codes, settle delays included.
func TotalMs(codes []Code) uint64 {
	var d uint64
	for _, c := range codes {
		d += c.DurationMs() + SettleMs
	}
	return d
}
