package app

import "trail/ritual"

// Question scrolls along the bottom row of the character display.
const Question = "When was the first bombe built at Bletchley Park?"

// Config is the exhibit build. Target, message and question are compile-time
// content; the scheduling knobs exist for the simulator and for testing.
type Config struct {
	Target   int
	Message  int
	Question string

	// Latch makes the ritual one-shot per arrival at the target.
	Latch bool
	// Cooperative keeps the scroll running while the ritual plays.
	Cooperative bool

	// PollMs paces Run between cycles. Zero polls as fast as possible.
	PollMs uint64
	// TraceScroll logs every scroll refresh.
	TraceScroll bool
}

// DefaultConfig returns the exhibit as installed.
func DefaultConfig() Config {
	return Config{
		Target:   ritual.Target,
		Message:  ritual.Message,
		Question: Question,
	}
}
