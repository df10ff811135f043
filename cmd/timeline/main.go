// Command timeline prints the ritual played for a message number: every
// indicator phase with its start time and duration. With -format wav it
// renders the buzzer audio instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"trail/pulse"
	"trail/ritual"
)

func main() {
	var (
		message = flag.Int("message", ritual.Message, "Message number to play (0..9999).")
		format  = flag.String("format", "text", "text|yaml|wav.")
		outPath = flag.String("out", "", "Output file (default stdout).")
	)
	flag.Parse()

	tl, err := build(*message)
	if err != nil {
		fatalf("timeline: %v", err)
	}

	if err := writeOutput(*outPath, *format, tl); err != nil {
		fatalf("%v", err)
	}
}

// writeOutput writes tl to path, or stdout when path is empty. A file is
// only created for a known format, and its close error is reported.
func writeOutput(path, format string, tl *timeline) (err error) {
	var write func(io.Writer, *timeline) error
	switch strings.ToLower(format) {
	case "text":
		write = writeText
	case "yaml":
		write = writeYAML
	case "wav":
		write = writeWAV
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if path == "" {
		if err := write(os.Stdout, tl); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f, tl); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

type entry struct {
	AtMs      uint64 `yaml:"at_ms"`
	Ms        uint64 `yaml:"ms"`
	Phase     string `yaml:"phase"`
	Digit     int    `yaml:"digit"`
	Pulse     int    `yaml:"pulse"`
	Kind      string `yaml:"kind,omitempty"`
	Indicator bool   `yaml:"indicator"`
	Line      string `yaml:"line,omitempty"`
}

type timeline struct {
	Message int      `yaml:"message"`
	Codes   []string `yaml:"codes"`
	TotalMs uint64   `yaml:"total_ms"`
	Steps   []entry  `yaml:"steps"`
}

// build lays out the ritual from the match onwards: the two feedback
// lines, then every pulse step.
func build(message int) (*timeline, error) {
	codes, err := pulse.NewTable().Encode(message, ritual.MessageDigits)
	if err != nil {
		return nil, err
	}
	digits := fmt.Sprintf("%0*d", ritual.MessageDigits, message)

	tl := &timeline{Message: message, TotalMs: ritual.TotalMs(codes)}
	for _, c := range codes {
		tl.Codes = append(tl.Codes, c.String())
	}

	tl.Steps = append(tl.Steps,
		entry{AtMs: 0, Ms: ritual.HoldMs, Phase: "hold", Digit: -1, Pulse: -1, Line: ritual.FeedbackLine},
		entry{AtMs: ritual.HoldMs, Ms: ritual.LeadInMs, Phase: "lead-in", Digit: -1, Pulse: -1, Line: ritual.StartLine},
	)
	at := uint64(ritual.HoldMs + ritual.LeadInMs)
	for _, st := range pulse.Timeline(codes) {
		e := entry{
			AtMs:      at,
			Ms:        st.Ms,
			Phase:     st.Phase.String(),
			Digit:     int(digits[st.Seq] - '0'),
			Pulse:     st.Pulse,
			Indicator: st.Active,
		}
		if st.Pulse >= 0 {
			e.Kind = st.Kind.String()
		}
		tl.Steps = append(tl.Steps, e)
		at += st.Ms
	}
	return tl, nil
}

func writeText(w io.Writer, tl *timeline) error {
	if _, err := fmt.Fprintf(w, "message %04d: %s\n", tl.Message, strings.Join(tl.Codes, " ")); err != nil {
		return err
	}
	for _, e := range tl.Steps {
		lamp := "."
		if e.Indicator {
			lamp = "#"
		}
		what := e.Line
		if e.Digit >= 0 {
			what = fmt.Sprintf("digit %d", e.Digit)
			if e.Pulse >= 0 {
				what += fmt.Sprintf(" pulse %d %s", e.Pulse+1, e.Kind)
			}
		}
		if _, err := fmt.Fprintf(w, "%7d %6d  %s  %-7s  %s\n", e.AtMs, e.Ms, lamp, e.Phase, what); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total %d ms\n", tl.TotalMs)
	return err
}

func writeYAML(w io.Writer, tl *timeline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tl); err != nil {
		return err
	}
	return enc.Close()
}
