package hal

import "sync"

// pinIndicator drives every attached LED to the same level.
type pinIndicator struct {
	mu     sync.Mutex
	leds   []LED
	active bool
}

// NewIndicator returns an Indicator that switches all leds together.
// Nil entries are skipped.
func NewIndicator(leds ...LED) Indicator {
	in := &pinIndicator{}
	for _, l := range leds {
		if l != nil {
			in.leds = append(in.leds, l)
		}
	}
	return in
}

func (p *pinIndicator) SetActive(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = on
	for _, l := range p.leds {
		if on {
			l.High()
		} else {
			l.Low()
		}
	}
}

func (p *pinIndicator) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// nullDevice swallows display commands and reads a centered joystick.
// Used when a peripheral fails to come up.
type nullDevice struct{}

func (nullDevice) Clear()             {}
func (nullDevice) SetCursor(_, _ int) {}
func (nullDevice) Print(_ string)     {}
func (nullDevice) ShowDecimal(_ int)  {}
func (nullDevice) Sample(_ Axis) int  { return SampleCenter }

// clipRow returns the part of text that fits on a character row when
// printing starts at col. LCD controllers would otherwise wrap the rest
// onto the next row or into hidden memory.
func clipRow(col int, text string) string {
	if col < 0 || col >= CharColumns {
		return ""
	}
	if room := CharColumns - col; len(text) > room {
		return text[:room]
	}
	return text
}
