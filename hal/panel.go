package hal

import (
	"fmt"
	"strings"
	"sync"
)

// PanelState is a copy of everything a simulated exhibit shows.
type PanelState struct {
	Lines   [CharRows]string
	Number  int
	Blank   bool
	Lamp    bool
	Version uint64
}

// Digits formats Number the way a four digit display shows it: right
// aligned, no leading zeros.
func (s PanelState) Digits() string {
	if s.Blank {
		return "    "
	}
	return fmt.Sprintf("%4d", s.Number)
}

// Panel models the exhibit front: a 16x2 character display, a four digit
// numeric display and a lamp. Host front-ends render its state.
type Panel struct {
	mu       sync.Mutex
	cells    [CharRows][CharColumns]byte
	col, row int
	number   int
	blank    bool
	lamp     bool
	version  uint64
}

// NewPanel returns a panel with an empty screen and a blank number.
func NewPanel() *Panel {
	p := &Panel{blank: true}
	p.wipe()
	return p
}

func (p *Panel) wipe() {
	for r := range p.cells {
		for c := range p.cells[r] {
			p.cells[r][c] = ' '
		}
	}
	p.col, p.row = 0, 0
}

func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wipe()
	p.version++
}

func (p *Panel) SetCursor(col, row int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.col, p.row = col, row
}

// Print writes ASCII text at the cursor. Characters past the last column
// are dropped; anything outside printable ASCII shows as '?'.
func (p *Panel) Print(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.row < 0 || p.row >= CharRows {
		return
	}
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < 0x20 || ch > 0x7e {
			ch = '?'
		}
		if p.col >= 0 && p.col < CharColumns {
			p.cells[p.row][p.col] = ch
		}
		p.col++
	}
	p.version++
}

func (p *Panel) ShowDecimal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > 9999 {
		n = 9999
	}
	if !p.blank && p.number == n {
		return
	}
	p.number = n
	p.blank = false
	p.version++
}

func (p *Panel) setLamp(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lamp == on {
		return
	}
	p.lamp = on
	p.version++
}

// Lamp returns the panel lamp as an LED so it can share an Indicator with
// other outputs.
func (p *Panel) Lamp() LED { return panelLamp{p: p} }

// State returns a copy of the panel.
func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	var s PanelState
	for r := range p.cells {
		s.Lines[r] = string(p.cells[r][:])
	}
	s.Number = p.number
	s.Blank = p.blank
	s.Lamp = p.lamp
	s.Version = p.version
	return s
}

// String renders the panel as three text lines for logs and tests.
func (s PanelState) String() string {
	lamp := "off"
	if s.Lamp {
		lamp = "ON"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] lamp %s\n", s.Digits(), lamp)
	fmt.Fprintf(&b, "|%s|\n", s.Lines[0])
	fmt.Fprintf(&b, "|%s|", s.Lines[1])
	return b.String()
}

type panelLamp struct{ p *Panel }

func (l panelLamp) High() { l.p.setLamp(true) }
func (l panelLamp) Low()  { l.p.setLamp(false) }
