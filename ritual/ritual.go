// Package ritual detects the target number and plays the reward: feedback
// text on the character display followed by the message in pulse code.
package ritual

import (
	"fmt"

	"trail/pulse"
)

const (
	// Target is the number the visitor has to dial.
	Target = 1940
	// Message is played digit by digit once Target is dialed.
	Message = 4391
	// MessageDigits is the number of codes played.
	MessageDigits = 4

	// HoldMs is how long the first feedback line stays up.
	HoldMs = 5000
	// LeadInMs separates the second feedback line from the first pulse.
	LeadInMs = pulse.GapMs

	FeedbackLine = "First letter: J"
	StartLine    = "Morse code"
)

// State is the phase of the ritual.
type State uint8

const (
	StateIdle State = iota
	StateHold
	StateLeadIn
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHold:
		return "hold"
	case StateLeadIn:
		return "lead-in"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Display is the character display the feedback is written to.
type Display interface {
	Clear()
	SetCursor(col, row int)
	Print(text string)
}

// Clock is the timebase. Sleep is only used in blocking mode.
type Clock interface {
	Millis() uint64
	Sleep(ms uint64)
}

// Logger receives one line per notable event.
type Logger interface {
	WriteLineString(s string)
}

// Config selects target, message and scheduling policy.
type Config struct {
	Target  int
	Message int

	// Latch makes the ritual one-shot: after firing, the dialed value has
	// to leave Target before it can fire again.
	Latch bool

	// Cooperative turns the ritual into a state machine advanced by Poll
	// instead of a blocking call inside Check.
	Cooperative bool

	// OnState, if set, is called on every state change.
	OnState func(State)
}

// DefaultConfig is the exhibit as built: blocking, no latch.
func DefaultConfig() Config {
	return Config{Target: Target, Message: Message}
}

// Ritual is the match detector and signal sequencer.
type Ritual struct {
	cfg   Config
	codes []pulse.Code

	disp Display
	ind  pulse.Indicator
	clk  Clock
	log  Logger

	seq      *pulse.Sequencer
	state    State
	deadline uint64
	latched  bool
	runs     uint64
	step     pulse.Step
}

// New validates cfg and encodes the message with table.
func New(cfg Config, table *pulse.Table, disp Display, ind pulse.Indicator, clk Clock, log Logger) (*Ritual, error) {
	if cfg.Target < 0 || cfg.Target > 9999 {
		return nil, fmt.Errorf("ritual: target %d out of range", cfg.Target)
	}
	if table == nil {
		table = pulse.NewTable()
	}
	codes, err := table.Encode(cfg.Message, MessageDigits)
	if err != nil {
		return nil, fmt.Errorf("ritual: encode message: %w", err)
	}
	if clk == nil {
		return nil, fmt.Errorf("ritual: nil clock")
	}

	r := &Ritual{
		cfg:   cfg,
		codes: codes,
		disp:  disp,
		ind:   ind,
		clk:   clk,
		log:   log,
	}
	r.seq = pulse.NewSequencer(ind, codes, r.stepped)
	return r, nil
}

// Check compares value with the target. On a match it starts the ritual and
// reports true. In blocking mode the whole ritual runs before Check returns.
func (r *Ritual) Check(value int, now uint64) bool {
	if value != r.cfg.Target {
		r.latched = false
		return false
	}
	if r.state != StateIdle {
		return false
	}
	if r.cfg.Latch && r.latched {
		return false
	}

	r.latched = true
	r.runs++
	r.logf("match: %04d, ritual %d starting", value, r.runs)

	if r.cfg.Cooperative {
		r.show(FeedbackLine)
		r.deadline = now + HoldMs
		r.setState(StateHold)
		return true
	}

	r.show(FeedbackLine)
	r.setState(StateHold)
	r.clk.Sleep(HoldMs)

	r.show(StartLine)
	r.setState(StateLeadIn)
	r.logf("printed %q", StartLine)
	r.clk.Sleep(LeadInMs)

	r.setState(StatePlaying)
	pulse.Play(r.ind, r.clk, r.codes, r.stepped)
	r.finish()
	return true
}

// Poll advances a cooperative ritual. Phases whose deadline already passed
// are completed in the same call. It is a no-op in blocking mode.
func (r *Ritual) Poll(now uint64) {
	if !r.cfg.Cooperative {
		return
	}
	for {
		switch r.state {
		case StateHold:
			if now < r.deadline {
				return
			}
			r.show(StartLine)
			r.deadline += LeadInMs
			r.setState(StateLeadIn)
			r.logf("printed %q", StartLine)
		case StateLeadIn:
			if now < r.deadline {
				return
			}
			r.setState(StatePlaying)
			r.seq.Start(r.deadline)
		case StatePlaying:
			if r.seq.Poll(now) {
				return
			}
			r.finish()
			return
		default:
			return
		}
	}
}

func (r *Ritual) finish() {
	if r.ind != nil {
		r.ind.SetActive(false)
	}
	r.step = pulse.Step{}
	r.setState(StateIdle)
	r.logf("ritual %d done", r.runs)
}

func (r *Ritual) stepped(st pulse.Step) {
	r.step = st
	switch {
	case st.Phase == pulse.PhaseOn && st.Pulse == 0:
		r.logf("code %d/%d: %s", st.Seq+1, len(r.codes), r.codes[st.Seq])
	case st.Phase == pulse.PhaseSettle:
		r.logf("code %d/%d played", st.Seq+1, len(r.codes))
	}
}

func (r *Ritual) show(line string) {
	if r.disp == nil {
		return
	}
	r.disp.Clear()
	r.disp.Print(line)
}

func (r *Ritual) setState(s State) {
	r.state = s
	if r.cfg.OnState != nil {
		r.cfg.OnState(s)
	}
}

func (r *Ritual) logf(format string, args ...any) {
	if r.log == nil {
		return
	}
	r.log.WriteLineString(fmt.Sprintf(format, args...))
}

// State returns the current phase.
func (r *Ritual) State() State { return r.state }

// Active reports whether a ritual is in progress.
func (r *Ritual) Active() bool { return r.state != StateIdle }

// Runs returns how many times the ritual has fired.
func (r *Ritual) Runs() uint64 { return r.runs }

// Step returns the pulse step being played, valid in StatePlaying.
func (r *Ritual) Step() pulse.Step { return r.step }

// Codes returns the encoded message.
func (r *Ritual) Codes() []pulse.Code { return r.codes }

// Target returns the number that fires the ritual.
func (r *Ritual) Target() int { return r.cfg.Target }

// TotalMs is the duration of one ritual from match to completion.
func (r *Ritual) TotalMs() uint64 { return TotalMs(r.codes) }

// TotalMs is the duration of a ritual playing codes.
func TotalMs(codes []pulse.Code) uint64 {
	return HoldMs + LeadInMs + pulse.TotalMs(codes)
}
